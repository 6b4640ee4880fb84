package tunerkit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	simulatePath       = "/api/completions"
	legacySimulatePath = "/v1/dev/completions"
)

// simulationDecision is the simulation endpoint's verdict: run the real
// method, or substitute Response verbatim as if it were the real result.
type simulationDecision struct {
	RunModel bool `json:"run_model"`
	Response any  `json:"response,omitempty"`
}

// simulate posts the call params and correlation headers to the simulation
// endpoint and waits for its decision. Unlike log delivery this is awaited,
// because the decision dictates control flow. Any failure is fatal for the
// call: the real method is deliberately not run as a fallback, so a
// developer who intended a simulation never incurs real costs by accident.
func (c *Client) simulate(ctx context.Context, params Params, headers Headers) (simulationDecision, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return simulationDecision{}, &SimulationError{Err: err}
	}

	path := simulatePath
	if c.legacy {
		path = legacySimulatePath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return simulationDecision{}, &SimulationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return simulationDecision{}, &SimulationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return simulationDecision{}, &SimulationError{StatusCode: resp.StatusCode}
	}

	var decision simulationDecision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return simulationDecision{}, &SimulationError{Err: err}
	}
	c.logger.Debug("simulation decision", zap.Bool("run_model", decision.RunModel))
	return decision, nil
}
