package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"intelhub/types"
)

// PipelineClient is a thin HTTP client for the intelhub API.
type PipelineClient struct {
	baseURL  string
	runToken string
	client   *http.Client
}

// NewPipelineClient creates a new API client. Pipeline runs are slow
// (sequential model calls), so the timeout is generous.
func NewPipelineClient(baseURL, runToken string) *PipelineClient {
	return &PipelineClient{
		baseURL:  baseURL,
		runToken: runToken,
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

type runRequest struct {
	MaxPerSource    int  `json:"max_per_source"`
	MaxTotal        int  `json:"max_total"`
	GenerateDigests bool `json:"generate_digests"`
	WindowHours     int  `json:"window_hours"`
	MinScore        int  `json:"min_score"`
}

// RunPipeline triggers a full ingestion run and blocks until it finishes.
func (c *PipelineClient) RunPipeline(params RunParams) (types.RunRecord, error) {
	body := runRequest{
		MaxPerSource:    params.MaxPerSource,
		MaxTotal:        params.MaxTotal,
		GenerateDigests: params.WithDigests,
		WindowHours:     params.WindowHours,
		MinScore:        params.MinScore,
	}

	var resp struct {
		Run   types.RunRecord `json:"run"`
		Error string          `json:"error"`
	}
	if err := c.post("/api/pipeline/run", body, &resp); err != nil {
		return types.RunRecord{}, err
	}
	return resp.Run, nil
}

// GenerateDigests triggers a digest-only pass.
func (c *PipelineClient) GenerateDigests(params RunParams) (int, error) {
	body := map[string]int{
		"window_hours": params.WindowHours,
		"min_score":    params.MinScore,
	}
	var resp struct {
		Digests int `json:"digests"`
	}
	if err := c.post("/api/digests/generate", body, &resp); err != nil {
		return 0, err
	}
	return resp.Digests, nil
}

// Health probes the server's liveness endpoint.
func (c *PipelineClient) Health() bool {
	resp, err := c.client.Get(c.baseURL + "/api/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *PipelineClient) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Run-Token", c.runToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}
