package models

// ProviderProfile carries the single denormalized field this service writes
// on a provider: the sorted set of "YYYY-MM-DD:HH" tokens for every slot that
// is currently available. The slot store stays the source of truth; the
// summary exists as a fast-read projection for external consumers.
type ProviderProfile struct {
	ID           string   `bson:"id" json:"id"`
	DisplayName  string   `bson:"displayName" json:"displayName"`
	Availability []string `bson:"availability" json:"availability"`
}

// ResyncPayload is the queued form of a deferred availability-summary resync.
type ResyncPayload struct {
	ProviderID string   `json:"providerId"`
	Dates      []string `json:"dates"`
}
