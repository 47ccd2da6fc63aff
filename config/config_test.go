package config

import (
	"testing"

	"github.com/nestmc/nestmc/core"
)

func TestJSONRoundTripIsIdentity(t *testing.T) {
	gid := core.CellGID(42)
	c := Config{
		Cells:                  100,
		SynapsesPerCell:        5,
		SynType:                "exp2syn",
		CompartmentsPerSegment: 3,
		TFinal:                 50,
		DT:                     0.01,
		AllToAll:               true,
		GroupSize:              10,
		ProbeRatio:             0.25,
		ProbeSomaOnly:          true,
		TracePrefix:            "trace",
		TraceMaxGID:            &gid,
		SpikeFileOutput:        true,
		SingleFilePerRank:      true,
		OverWrite:              false,
		OutputPath:             "/tmp/out",
		FileName:               "spikes",
		FileExtension:          "gdf",
	}

	data, err := c.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got != c {
		if got.TraceMaxGID == nil || c.TraceMaxGID == nil || *got.TraceMaxGID != *c.TraceMaxGID {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
		}
		gotCopy, wantCopy := got, c
		gotCopy.TraceMaxGID, wantCopy.TraceMaxGID = nil, nil
		if gotCopy != wantCopy {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
		}
	}
}

func TestJSONRoundTripOmitsAbsentTraceMaxGID(t *testing.T) {
	c := Default()
	data, err := c.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.TraceMaxGID != nil {
		t.Fatalf("expected absent trace_max_gid to stay nil, got %v", *got.TraceMaxGID)
	}
}

func TestValidateRejectsMutuallyExclusiveNetworkOptions(t *testing.T) {
	c := Default()
	c.Ring = true
	c.AllToAll = true
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for ring and all_to_all both set")
	}
}

func TestValidateDefaultsGroupSizeToOneNotCompartments(t *testing.T) {
	c := Default()
	c.CompartmentsPerSegment = 8
	if c.GroupSize != 1 {
		t.Fatalf("Default() group_size = %d, want 1 (must not copy compartments_per_segment)", c.GroupSize)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() config should validate: %v", err)
	}
}

func TestValidateRejectsBadProbeRatio(t *testing.T) {
	c := Default()
	c.ProbeRatio = 1.5
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for probe_ratio outside [0,1]")
	}
}

func TestValidateRejectsUnknownSynType(t *testing.T) {
	c := Default()
	c.SynType = "alphasyn"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unrecognized syn_type")
	}
}

func TestDefaultSynapsesPerCellIsOneNotZero(t *testing.T) {
	c := Default()
	if c.SynapsesPerCell != 1 {
		t.Fatalf("Default() synapses_per_cell = %d, want 1 (0 would leave no addressable synapse target)", c.SynapsesPerCell)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() config should validate: %v", err)
	}
}

func TestValidateRejectsNegativeSynapsesPerCell(t *testing.T) {
	c := Default()
	c.SynapsesPerCell = -1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for negative synapses_per_cell")
	}
}

func TestValidateRejectsZeroCompartmentsPerSegment(t *testing.T) {
	c := Default()
	c.CompartmentsPerSegment = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for compartments_per_segment < 1")
	}
}
