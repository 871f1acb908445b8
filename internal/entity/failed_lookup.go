package entity

import "time"

// FailedLookup mirrors the `failed_lookups` table schema.
type FailedLookup struct {
	ID                   int64
	Query                string
	FailureReason        string
	Attempts             int
	LastAttemptTimestamp time.Time
}
