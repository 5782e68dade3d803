package types

import "time"

// BlacklistEntry is an operator-supplied deny-list record. It is
// independent of any specific pass.
type BlacklistEntry struct {
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Reason  string    `json:"reason"`
	AddedAt time.Time `json:"added_at"`
}
