package i18nkeys

import (
	"encoding/json"
)

// Trace captures the namespace lookups attempted while resolving a key, in
// the order they were consulted.
type Trace struct {
	Key   string      `json:"key"`
	Steps []TraceStep `json:"steps"`
}

// TraceStep details a single namespace consultation.
type TraceStep struct {
	Namespace string `json:"namespace"`
	Path      string `json:"path"`
	Found     bool   `json:"found"`
	Kind      Kind   `json:"kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

func traceStep(ns, path string, resolution Resolution, err error) TraceStep {
	step := TraceStep{
		Namespace: ns,
		Path:      path,
	}
	if err != nil {
		step.Detail = err.Error()
		return step
	}
	step.Found = true
	step.Kind = resolution.Kind
	return step
}
