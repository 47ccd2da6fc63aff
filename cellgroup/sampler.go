package cellgroup

import "github.com/nestmc/nestmc/core"

// Sample is one (time, value) pair recorded by a Sampler.
type Sample struct {
	Time  float64
	Value float64
}

// Sampler records the voltage at one compartment every Stride integration
// steps, mirroring the miniapp's trace-writing probes. Samplers are drained
// between steps, not between epochs: a cell group calls Record after every
// accepted step of Advance, independent of the communication interval.
type Sampler struct {
	Compartment int
	Stride      int

	// GID and Local identify, for a trace writer's benefit, which cell and
	// which of that cell's own compartments this sampler was requested for
	// (Compartment is the group's packed numbering, not useful on its own
	// once emitted outside the group). Set by Label; zero value until then.
	GID   core.CellGID
	Local int

	steps   int
	samples []Sample
}

// NewSampler returns a sampler recording the voltage at compartment ci every
// stride accepted steps. A stride of 0 or 1 records every step.
func NewSampler(compartment, stride int) *Sampler {
	if stride < 1 {
		stride = 1
	}
	return &Sampler{Compartment: compartment, Stride: stride}
}

// Label records which cell and local compartment this sampler was requested
// for, so a trace writer outside the group can name its output meaningfully.
func (s *Sampler) Label(gid core.CellGID, local int) {
	s.GID = gid
	s.Local = local
}

// Record is called by Advance after every accepted step with the step's
// final time and the sampler's compartment voltage at that time.
func (s *Sampler) Record(t, v float64) {
	if s.steps%s.Stride == 0 {
		s.samples = append(s.samples, Sample{Time: t, Value: v})
	}
	s.steps++
}

// Samples returns every sample recorded since the last clear.
func (s *Sampler) Samples() []Sample { return s.samples }

// clear drops every recorded sample and resets the stride counter, called by
// CellGroup.Reset.
func (s *Sampler) clear() {
	s.samples = nil
	s.steps = 0
}
