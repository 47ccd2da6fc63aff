// Package config defines the driver's configuration surface: every option
// enumerated in spec.md §6, loaded from flags by cmd/nestmcrun exactly as
// the teacher repo's cmd/sublrun builds its runtime.EngineOptions from
// flag.* variables.
package config

import (
	"encoding/json"

	"github.com/nestmc/nestmc/core"
)

// Config holds every option of the driver's configuration surface.
// TraceMaxGID is a pointer because the option is optional and unset must
// round-trip through JSON as absent, not as the zero gid.
type Config struct {
	Cells                  int           `json:"cells"`
	SynapsesPerCell        int           `json:"synapses_per_cell"`
	SynType                string        `json:"syn_type"`
	CompartmentsPerSegment int           `json:"compartments_per_segment"`
	TFinal                 float64       `json:"tfinal"`
	DT                     float64       `json:"dt"`
	AllToAll               bool          `json:"all_to_all"`
	Ring                   bool          `json:"ring"`
	GroupSize              int           `json:"group_size"`
	ProbeRatio             float64       `json:"probe_ratio"`
	ProbeSomaOnly          bool          `json:"probe_soma_only"`
	TracePrefix            string        `json:"trace_prefix"`
	TraceMaxGID            *core.CellGID `json:"trace_max_gid,omitempty"`
	SpikeFileOutput        bool          `json:"spike_file_output"`
	SingleFilePerRank      bool          `json:"single_file_per_rank"`
	OverWrite              bool          `json:"over_write"`
	OutputPath             string        `json:"output_path"`
	FileName               string        `json:"file_name"`
	FileExtension          string        `json:"file_extension"`
}

// Default returns a Config with every option at its documented default:
// group_size defaults to 1 (never to compartments_per_segment — see
// spec.md §9's open question), syn_type defaults to expsyn,
// synapses_per_cell and compartments_per_segment default to 1 each so a
// freshly defaulted Config already describes a connectable network rather
// than one with no addressable synapse targets.
func Default() Config {
	return Config{
		Cells:                  1,
		SynapsesPerCell:        1,
		SynType:                "expsyn",
		CompartmentsPerSegment: 1,
		TFinal:                 50,
		DT:                     0.01,
		GroupSize:              1,
		FileExtension:          "gdf",
	}
}

// Validate enforces the usage-error invariants of spec.md §7: ring and
// all_to_all are mutually exclusive, group_size and compartments_per_segment
// must be at least 1, syn_type must be a recognized mechanism, and
// probe_ratio must lie in [0, 1].
func (c Config) Validate() error {
	if c.Ring && c.AllToAll {
		return &core.UsageError{Option: "ring/all_to_all", Reason: "ring and all_to_all are mutually exclusive"}
	}
	if c.GroupSize < 1 {
		return &core.UsageError{Option: "group_size", Reason: "must be >= 1"}
	}
	if c.CompartmentsPerSegment < 1 {
		return &core.UsageError{Option: "compartments_per_segment", Reason: "must be >= 1"}
	}
	if c.SynapsesPerCell < 0 {
		return &core.UsageError{Option: "synapses_per_cell", Reason: "must be >= 0"}
	}
	if c.SynType != "expsyn" && c.SynType != "exp2syn" {
		return &core.UsageError{Option: "syn_type", Reason: "must be expsyn or exp2syn"}
	}
	if c.ProbeRatio < 0 || c.ProbeRatio > 1 {
		return &core.UsageError{Option: "probe_ratio", Reason: "must lie in [0, 1]"}
	}
	if c.Cells < 1 {
		return &core.UsageError{Option: "cells", Reason: "must be >= 1"}
	}
	if c.DT <= 0 || c.TFinal <= 0 {
		return &core.UsageError{Option: "dt/tfinal", Reason: "must be strictly positive"}
	}
	return nil
}

// MarshalJSON and the struct tags above fully determine the wire format;
// no custom marshaling is needed. ToJSON and FromJSON exist only so
// callers outside this package (the CLI, tests) don't need to import
// encoding/json themselves.

// ToJSON renders c as its canonical JSON encoding.
func (c Config) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// FromJSON parses data into a Config.
func FromJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
