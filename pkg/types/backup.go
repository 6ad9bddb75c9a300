package types

// Backup event types. Every ledger entry records whether it captured an
// update or the final snapshot before a deletion.
const (
	EventUpdate   = "update"
	EventDeletion = "deletion"
)

// BackupEntry is one point-in-time snapshot in the rolling backup ledger.
// Key is derived from ProfileID and Timestamp (plus a deletion marker), so
// entries for one profile sort lexically close together, but ordering for
// retention and recovery always uses the parsed Timestamp, never the key.
type BackupEntry struct {
	Key       string   `json:"key"`
	ProfileID string   `json:"profile_id"`
	Timestamp string   `json:"timestamp"` // RFC 3339 with nanoseconds
	Event     string   `json:"event"`     // EventUpdate or EventDeletion
	Snapshot  *Profile `json:"snapshot"`
}
