package types

// IssueRequest is the operator-submitted form for a new visitor pass.
// Timestamps are RFC3339 strings; ExpectedArrival defaults to the server's
// current time when omitted.
type IssueRequest struct {
	VisitorName       string `json:"visitor_name"`
	Phone             string `json:"phone"`
	Purpose           string `json:"purpose,omitempty"`
	Vehicle           string `json:"vehicle,omitempty"`
	ResidentName      string `json:"resident_name"`
	Unit              string `json:"unit"`
	ExpectedArrival   string `json:"expected_arrival,omitempty"`
	ExpectedDeparture string `json:"expected_departure"`
}

// PassResponse wraps the current pass for the operator surface.
type PassResponse struct {
	OK               bool        `json:"ok"`
	Pass             VisitorPass `json:"pass"`
	RemainingSeconds int64       `json:"remaining_seconds"`
	ServerTime       string      `json:"server_time"`
}

// VerifyRequest carries the PIN supplied by security at the gate.
type VerifyRequest struct {
	PIN string `json:"pin"`
}

// VerifyResponse reports the outcome of an entry verification.
// Verified is false both on PIN mismatch and on a re-entrant call
// against an already-active pass; Denied distinguishes the two.
type VerifyResponse struct {
	OK         bool   `json:"ok"`
	Verified   bool   `json:"verified"`
	Denied     bool   `json:"denied"`
	Status     Status `json:"status"`
	ServerTime string `json:"server_time"`
}

// ExitResponse reports the outcome of a mark-exit request.
type ExitResponse struct {
	OK         bool   `json:"ok"`
	Status     Status `json:"status"`
	ServerTime string `json:"server_time"`
}

// BlacklistAddRequest is the operator form for a new deny-list record.
type BlacklistAddRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}
