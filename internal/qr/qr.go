// Package qr builds image URLs for an external QR-code rendering
// endpoint. The endpoint is treated as an opaque encoder: the payload
// goes out URL-encoded and the returned image is never parsed.
package qr

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// DefaultEndpoint renders a QR image from a "data" query parameter.
const DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// payload is the JSON document encoded into the QR image.
type payload struct {
	PassID    string `json:"passId"`
	Visitor   string `json:"visitor"`
	Resident  string `json:"resident"`
	Unit      string `json:"unit"`
	Purpose   string `json:"purpose"`
	PassCode  string `json:"passCode"`
	Generated string `json:"generated"`
}

// Encoder produces image URLs for visitor passes.
type Encoder struct {
	endpoint string
	size     int
}

// NewEncoder creates an encoder for the given endpoint. An empty endpoint
// falls back to DefaultEndpoint; a non-positive size falls back to 200.
func NewEncoder(endpoint string, size int) *Encoder {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if size <= 0 {
		size = 200
	}
	return &Encoder{endpoint: endpoint, size: size}
}

// ImageURL returns the external image URL encoding the pass payload.
func (e *Encoder) ImageURL(p types.VisitorPass) (string, error) {
	doc := payload{
		PassID:    p.ID,
		Visitor:   p.VisitorName,
		Resident:  p.ResidentName,
		Unit:      p.Unit,
		Purpose:   string(p.Purpose),
		PassCode:  p.PassCode,
		Generated: p.IssuedAt.UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("qr payload: %w", err)
	}

	u, err := url.Parse(e.endpoint)
	if err != nil {
		return "", fmt.Errorf("qr endpoint: %w", err)
	}
	q := u.Query()
	q.Set("size", fmt.Sprintf("%dx%d", e.size, e.size))
	q.Set("data", string(data))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
