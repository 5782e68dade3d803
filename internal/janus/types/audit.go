package types

import "time"

// AuditEventType distinguishes entry verifications from exits.
type AuditEventType string

const (
	AuditEntry AuditEventType = "entry"
	AuditExit  AuditEventType = "exit"
)

// VerifiedBy records which actor confirmed the event.
type VerifiedBy string

const (
	VerifiedBySystem   VerifiedBy = "system"
	VerifiedBySecurity VerifiedBy = "security"
)

// AuditLogEntry is one entry/exit verification event. Entries are
// append-only; they are never edited or removed individually.
type AuditLogEntry struct {
	ID          string         `json:"id"`
	VisitorName string         `json:"visitor_name"`
	Type        AuditEventType `json:"type"`
	PassCode    string         `json:"pass_code"`
	Timestamp   time.Time      `json:"timestamp"`
	VerifiedBy  VerifiedBy     `json:"verified_by"`
}
