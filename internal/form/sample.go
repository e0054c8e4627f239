package form

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SamplePath is where the server publishes its sample job description.
const SamplePath = "/sample-jd"

// SampleSource provides a sample job description on demand.
type SampleSource interface {
	Fetch(ctx context.Context) (string, error)
}

// SamplePayload is the JSON body served at SamplePath.
type SamplePayload struct {
	JobDescription string `json:"job_description"`
}

type httpSampleSource struct {
	client *http.Client
	url    string
}

func NewHTTPSampleSource(client *http.Client, url string) SampleSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpSampleSource{
		client: client,
		url:    url,
	}
}

// Fetch implements SampleSource.
func (s *httpSampleSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sample request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected sample status: %d", resp.StatusCode)
	}

	var payload SamplePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode sample: %w", err)
	}

	return payload.JobDescription, nil
}
