package qr_test

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"
	"github.com/AveryLClark/janus/internal/qr"
)

func TestImageURL_EncodesPayload(t *testing.T) {
	enc := qr.NewEncoder("https://qr.example/render", 300)

	pass := types.VisitorPass{
		ID:           "pass-123",
		PassCode:     "AB12CD",
		VisitorName:  "A. Visitor",
		ResidentName: "R. Owner",
		Unit:         "B-204",
		Purpose:      types.PurposeGuest,
		IssuedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := enc.ImageURL(pass)
	if err != nil {
		t.Fatalf("ImageURL: %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if u.Host != "qr.example" {
		t.Errorf("expected host qr.example, got %q", u.Host)
	}
	if got := u.Query().Get("size"); got != "300x300" {
		t.Errorf("expected size=300x300, got %q", got)
	}

	var doc map[string]string
	if err := json.Unmarshal([]byte(u.Query().Get("data")), &doc); err != nil {
		t.Fatalf("data param is not JSON: %v", err)
	}
	if doc["passId"] != "pass-123" {
		t.Errorf("expected passId=pass-123, got %q", doc["passId"])
	}
	if doc["passCode"] != "AB12CD" {
		t.Errorf("expected passCode=AB12CD, got %q", doc["passCode"])
	}
	if doc["generated"] != "2026-03-01T10:00:00Z" {
		t.Errorf("unexpected generated timestamp %q", doc["generated"])
	}
}

func TestImageURL_Defaults(t *testing.T) {
	enc := qr.NewEncoder("", 0)

	raw, err := enc.ImageURL(types.VisitorPass{ID: "p"})
	if err != nil {
		t.Fatalf("ImageURL: %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if u.Host != "api.qrserver.com" {
		t.Errorf("expected default endpoint host, got %q", u.Host)
	}
	if got := u.Query().Get("size"); got != "200x200" {
		t.Errorf("expected default size 200x200, got %q", got)
	}
}
