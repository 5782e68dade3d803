package types

import (
	"strings"
	"time"
)

// Purpose is the visitor's stated reason for the visit.
type Purpose string

const (
	PurposePersonal Purpose = "personal"
	PurposeDelivery Purpose = "delivery"
	PurposeService  Purpose = "service"
	PurposeGuest    Purpose = "guest"
	PurposeBusiness Purpose = "business"
	PurposeOther    Purpose = "other"
)

// ParsePurpose maps free-form input to a known purpose. Unknown values
// fall back to PurposeOther rather than failing the request.
func ParsePurpose(s string) Purpose {
	switch Purpose(strings.ToLower(strings.TrimSpace(s))) {
	case PurposePersonal:
		return PurposePersonal
	case PurposeDelivery:
		return PurposeDelivery
	case PurposeService:
		return PurposeService
	case PurposeGuest:
		return PurposeGuest
	case PurposeBusiness:
		return PurposeBusiness
	default:
		return PurposeOther
	}
}

// Status is the lifecycle state of a visitor pass.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Terminal reports whether no further transitions are accepted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

// VisitorPass is a time-bounded credential for a single visitor.
// Exactly one pass is "current" at a time; superseded passes survive
// only as creation-time snapshots in the pass store.
type VisitorPass struct {
	ID       string `json:"id"`
	PassCode string `json:"pass_code"`
	PIN      string `json:"pin"`

	VisitorName string  `json:"visitor_name"`
	Phone       string  `json:"phone"`
	Purpose     Purpose `json:"purpose"`
	Vehicle     string  `json:"vehicle,omitempty"`

	ResidentName string `json:"resident_name"`
	Unit         string `json:"unit"`

	ExpectedArrival   time.Time `json:"expected_arrival"`
	ExpectedDeparture time.Time `json:"expected_departure"`

	Status           Status    `json:"status"`
	SecurityVerified bool      `json:"security_verified"`
	IssuedAt         time.Time `json:"issued_at"`
}
