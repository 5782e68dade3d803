package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// FormatShareSummary renders a pass as the plain-text block handed to a
// visitor over a share sheet or clipboard. Pure read; no state effect.
func FormatShareSummary(p types.VisitorPass) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Visitor Pass for %s\n", p.VisitorName)
	fmt.Fprintf(&b, "Pass Code: %s\n", p.PassCode)
	fmt.Fprintf(&b, "PIN: %s\n", p.PIN)
	fmt.Fprintf(&b, "Resident: %s", p.ResidentName)
	if p.Unit != "" {
		fmt.Fprintf(&b, " (Unit %s)", p.Unit)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Purpose: %s\n", p.Purpose)
	if p.Vehicle != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", p.Vehicle)
	}
	fmt.Fprintf(&b, "Valid: %s to %s\n",
		p.ExpectedArrival.Format(time.RFC1123),
		p.ExpectedDeparture.Format(time.RFC1123))

	return b.String()
}
