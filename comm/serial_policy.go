package comm

import "github.com/nestmc/nestmc/core"

// SerialPolicy is the single-rank, no-op communication policy: the
// all-reduce minimum is the identity, and the all-to-all-v gather is just
// the local contribution with a one-entry partition. It is the only
// concrete Policy shipped in this repository, since no distributed
// transport (MPI, gRPC, zeromq, ...) appears anywhere in the retrieved
// corpus to ground a second one on.
type SerialPolicy struct{}

func (SerialPolicy) Rank() int { return 0 }

func (SerialPolicy) Size() int { return 1 }

func (SerialPolicy) Min(x float64) float64 { return x }

func (SerialPolicy) GatherSpikes(local []core.Spike) (core.GatheredVector, error) {
	values := append([]core.Spike(nil), local...)
	return core.GatheredVector{
		Values:  values,
		Offsets: []int{0, len(values)},
	}, nil
}
