package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxReportBytes = 10 << 20

// HTTPRelay talks to a running relay server.
type HTTPRelay struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRelay builds a relay client; timeout 0 means no client-side limit.
func NewHTTPRelay(baseURL string, timeout time.Duration) *HTTPRelay {
	return &HTTPRelay{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Analyze posts the message to /api/analyze. Any non-2xx status is an error,
// including the 429 and 500 fallback payloads.
func (r *HTTPRelay) Analyze(ctx context.Context, message string) (Reply, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return Reply{}, err
	}
	resp, err := r.post(ctx, "/api/analyze", body)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Reply{}, fmt.Errorf("relay status %d", resp.StatusCode)
	}
	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("decode relay reply: %w", err)
	}
	return reply, nil
}

// Report posts the snapshot to /api/report and returns the PDF bytes.
func (r *HTTPRelay) Report(ctx context.Context, snap Snapshot) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"mhLabel": snap.MHLabel,
		"phLabel": snap.PHLabel,
		"status":  snap.Status,
	})
	if err != nil {
		return nil, err
	}
	resp, err := r.post(ctx, "/api/report", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("report status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReportBytes))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return data, nil
}

func (r *HTTPRelay) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}
