package lore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20

// HTTPGenerator posts the requests as {"locations": [...]} and expects the
// entries back under the same key.
type HTTPGenerator struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

type httpPayload struct {
	Locations []Request `json:"locations"`
}

type httpResponse struct {
	Locations []Entry `json:"locations"`
}

func (h HTTPGenerator) Generate(ctx context.Context, reqs []Request) ([]Entry, error) {
	if err := validateEndpoint(h.Endpoint); err != nil {
		return nil, err
	}
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	body, err := json.Marshal(httpPayload{Locations: reqs})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = defaultHTTPClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("lore request failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var out httpResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode lore response: %w", err)
	}
	if len(out.Locations) != len(reqs) {
		return nil, fmt.Errorf("lore response has %d entries, want %d", len(out.Locations), len(reqs))
	}
	return out.Locations, nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

func validateEndpoint(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("lore endpoint is empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported lore endpoint scheme: %q", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("lore endpoint has no host: %q", raw)
	}
	return nil
}
