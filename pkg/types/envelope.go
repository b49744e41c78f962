// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the wire structures shared by every source adapter:
// the unified Paper record, the LLM Answer record, and the success/failure
// envelopes that wrap them.
package types

import "encoding/json"

// Meta is the open metadata map attached to successful envelopes. It always
// holds "timestamp" and "api_version".
type Meta map[string]any

// Envelope is the uniform return shape of every list operation. Exactly one
// of Results or Answers is populated on success; result_count is derived from
// whichever is set so it can never disagree with the payload.
type Envelope struct {
	Success bool
	Query   string
	Source  Source
	Results []Paper
	Answers []Answer
	Meta    Meta

	// Error is the human-readable cause when Success is false.
	Error string

	// Err is the classified cause kept for in-process callers. Not serialized.
	Err error
}

// ResultCount returns the number of records carried by the envelope.
func (e Envelope) ResultCount() int {
	if e.Answers != nil {
		return len(e.Answers)
	}
	return len(e.Results)
}

type envelopeSuccess struct {
	Success     bool   `json:"success" yaml:"success"`
	Query       string `json:"query" yaml:"query"`
	Source      Source `json:"source" yaml:"source"`
	ResultCount int    `json:"result_count" yaml:"result_count"`
	Results     any    `json:"results" yaml:"results"`
	Meta        Meta   `json:"meta" yaml:"meta"`
}

type envelopeFailure struct {
	Success bool   `json:"success" yaml:"success"`
	Error   string `json:"error" yaml:"error"`
	Source  Source `json:"source" yaml:"source"`
}

func (e Envelope) wire() any {
	if !e.Success {
		return envelopeFailure{Error: e.Error, Source: e.Source}
	}
	var results any = e.Results
	if e.Answers != nil {
		results = e.Answers
	} else if e.Results == nil {
		results = []Paper{}
	}
	return envelopeSuccess{
		Success:     true,
		Query:       e.Query,
		Source:      e.Source,
		ResultCount: e.ResultCount(),
		Results:     results,
		Meta:        e.Meta,
	}
}

// MarshalJSON writes the success or failure shape.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// MarshalYAML writes the success or failure shape.
func (e Envelope) MarshalYAML() (any, error) {
	return e.wire(), nil
}

// DetailEnvelope wraps the single-paper detail operations. It is distinct
// from Envelope: the payload is one PaperDetail under "paper".
type DetailEnvelope struct {
	Success bool
	Source  Source
	Paper   *PaperDetail
	Meta    Meta
	Error   string
	Err     error
}

type detailSuccess struct {
	Success bool         `json:"success" yaml:"success"`
	Source  Source       `json:"source" yaml:"source"`
	Paper   *PaperDetail `json:"paper" yaml:"paper"`
	Meta    Meta         `json:"meta" yaml:"meta"`
}

func (d DetailEnvelope) wire() any {
	if !d.Success {
		return envelopeFailure{Error: d.Error, Source: d.Source}
	}
	return detailSuccess{Success: true, Source: d.Source, Paper: d.Paper, Meta: d.Meta}
}

// MarshalJSON writes the success or failure shape.
func (d DetailEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// MarshalYAML writes the success or failure shape.
func (d DetailEnvelope) MarshalYAML() (any, error) {
	return d.wire(), nil
}
