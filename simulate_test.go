package tunerkit

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func TestSimulationShortCircuit(t *testing.T) {
	api, svc := newFakeAPI()
	b := newBackend(t)
	b.setSimulation(http.StatusOK, `{"run_model": false, "response": {"simulated": true}}`)
	c := newTestClient(t, api, b)

	c.StartSession(nil, "ds-1", WithSessionType(SessionTest))

	got, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "x"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	want := map[string]any{"simulated": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("result = %v, want simulated response %v", got, want)
	}
	if svc.calls != 0 {
		t.Errorf("underlying calls = %d, want 0", svc.calls)
	}

	// Log record must carry the simulated response the caller received.
	flush(t, c)
	var logged bool
	for _, log := range b.logRequests() {
		if log.headers.Get(HeaderSessionPath) != "" {
			continue
		}
		logged = true
		resp := log.body["response"].(map[string]any)
		if !reflect.DeepEqual(resp["json"], want) {
			t.Errorf("logged response = %v, want %v", resp["json"], want)
		}
	}
	if !logged {
		t.Error("simulated call was not logged")
	}
}

func TestSimulationRunModel(t *testing.T) {
	api, svc := newFakeAPI()
	b := newBackend(t)
	b.setSimulation(http.StatusOK, `{"run_model": true}`)
	c := newTestClient(t, api, b)

	c.StartSession(nil, "ds-1", WithSessionType(SessionTest))

	if _, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "x"}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if svc.calls != 1 {
		t.Errorf("underlying calls = %d, want 1", svc.calls)
	}
	if n := len(b.simRequests()); n != 1 {
		t.Errorf("simulation requests = %d, want 1", n)
	}
}

func TestSimulationFailureAbortsCall(t *testing.T) {
	api, svc := newFakeAPI()
	b := newBackend(t)
	b.setSimulation(http.StatusInternalServerError, "")
	c := newTestClient(t, api, b)

	c.StartSession(nil, "ds-1", WithSessionType(SessionTest))

	_, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "x"})
	if !errors.Is(err, ErrSimulationUnavailable) {
		t.Fatalf("err = %v, want ErrSimulationUnavailable", err)
	}
	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("err = %T, want *SimulationError", err)
	}
	if simErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", simErr.StatusCode, http.StatusInternalServerError)
	}
	if svc.calls != 0 {
		t.Errorf("underlying calls = %d, want 0: no silent fallback to the real model", svc.calls)
	}
}

func TestSimulationSkippedForRealSession(t *testing.T) {
	api, svc := newFakeAPI()
	b := newBackend(t)
	c := newTestClient(t, api, b)

	c.StartSession(nil, "ds-1")

	if _, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "x"}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if svc.calls != 1 {
		t.Errorf("underlying calls = %d, want 1", svc.calls)
	}
	if n := len(b.simRequests()); n != 0 {
		t.Errorf("simulation requests = %d, want 0 for a real session", n)
	}
}

func TestSimulationDevFlagTrigger(t *testing.T) {
	api, svc := newFakeAPI()
	b := newBackend(t)
	b.setSimulation(http.StatusOK, `{"run_model": false, "response": "canned"}`)
	c := newTestClient(t, api, b)

	// No session at all: the per-call flag alone activates the gate.
	got, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "x"}, WithDev(true))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "canned" {
		t.Errorf("result = %v, want %q", got, "canned")
	}
	if svc.calls != 0 {
		t.Errorf("underlying calls = %d, want 0", svc.calls)
	}
}

func TestSimulationSendsParamsAndHeaders(t *testing.T) {
	api, _ := newFakeAPI()
	b := newBackend(t)
	b.setSimulation(http.StatusOK, `{"run_model": true}`)
	c := newTestClient(t, api, b)

	c.StartSession(nil, "ds-1", WithSessionID("sess-sim"), WithSessionType(SessionTest))

	if _, err := c.Call(context.Background(), "chat.completions.create", Params{"input": "probe"}); err != nil {
		t.Fatalf("Call: %v", err)
	}

	sims := b.simRequests()
	if len(sims) != 1 {
		t.Fatalf("simulation requests = %d, want 1", len(sims))
	}
	if sims[0].body["input"] != "probe" {
		t.Errorf("simulation body = %v, want original params", sims[0].body)
	}
	if got := sims[0].headers.Get(HeaderSessionID); got != "sess-sim" {
		t.Errorf("simulation session id = %q, want %q", got, "sess-sim")
	}
}
