package models

// SlotWriteOp names the per-slot write emitted by a week save.
type SlotWriteOp string

const (
	SlotOpCreate SlotWriteOp = "create"
	SlotOpUpdate SlotWriteOp = "update"
	SlotOpDelete SlotWriteOp = "delete"
)

// SlotWriteFailure identifies one slot write that failed within a batch, so
// callers can retry just the failed subset.
type SlotWriteFailure struct {
	Date   string      `json:"date"`
	Hour   int         `json:"hour"`
	Op     SlotWriteOp `json:"op"`
	Reason string      `json:"reason"`
}

// WeekSaveResult is the structured outcome of saving one week. Successful
// writes are never rolled back when siblings fail; failures are listed
// instead. SyncWarning is set when the slot writes landed but the summary
// resync did not (the store stays authoritative and a later resync
// converges).
type WeekSaveResult struct {
	WeekStart   string             `json:"weekStart"`
	Created     int                `json:"created"`
	Updated     int                `json:"updated"`
	Deleted     int                `json:"deleted"`
	Unchanged   int                `json:"unchanged"`
	Failures    []SlotWriteFailure `json:"failures,omitempty"`
	SyncWarning string             `json:"syncWarning,omitempty"`
}

// Succeeded counts the writes that landed.
func (r *WeekSaveResult) Succeeded() int {
	return r.Created + r.Updated + r.Deleted
}

// Attempted counts every write the batch emitted, failed ones included.
func (r *WeekSaveResult) Attempted() int {
	return r.Succeeded() + len(r.Failures)
}

// WeekOutcome records one week of a propagation run.
type WeekOutcome struct {
	WeekStart string          `json:"weekStart"`
	Result    *WeekSaveResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// PropagationResult is the best-effort outcome of replicating a template
// across future weeks. A failed week never stops the weeks after it.
type PropagationResult struct {
	WeeksApplied int           `json:"weeksApplied"`
	WeeksFailed  int           `json:"weeksFailed"`
	Weeks        []WeekOutcome `json:"weeks"`
}
