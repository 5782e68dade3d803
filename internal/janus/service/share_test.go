package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/AveryLClark/janus/internal/janus/service"
	"github.com/AveryLClark/janus/internal/janus/types"
)

func TestFormatShareSummary(t *testing.T) {
	pass := types.VisitorPass{
		PassCode:          "AB12CD",
		PIN:               "4321",
		VisitorName:       "A. Visitor",
		ResidentName:      "R. Owner",
		Unit:              "B-204",
		Purpose:           types.PurposeDelivery,
		Vehicle:           "KA01AB1234",
		ExpectedArrival:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ExpectedDeparture: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	got := service.FormatShareSummary(pass)

	for _, want := range []string{
		"A. Visitor",
		"Pass Code: AB12CD",
		"PIN: 4321",
		"R. Owner",
		"Unit B-204",
		"delivery",
		"KA01AB1234",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestFormatShareSummary_OmitsEmptyOptionalFields(t *testing.T) {
	pass := types.VisitorPass{
		PassCode:     "AB12CD",
		PIN:          "4321",
		VisitorName:  "A. Visitor",
		ResidentName: "R. Owner",
		Purpose:      types.PurposeGuest,
	}

	got := service.FormatShareSummary(pass)
	if strings.Contains(got, "Vehicle") {
		t.Errorf("expected no vehicle line:\n%s", got)
	}
	if strings.Contains(got, "Unit") {
		t.Errorf("expected no unit suffix:\n%s", got)
	}
}
