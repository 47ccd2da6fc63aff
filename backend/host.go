package backend

// Host is the reference backend: plain Go loops over []float64, no SIMD or
// accelerator offload. It is the default backend for tests, the CLI tools,
// and any cell group that does not request something else. Concrete
// accelerator backends implement the same interface; the core only ever
// holds a Backend value, never a Host directly, so swapping one in requires
// no change to cellgroup or matrix.
type Host struct{}

// NewHost constructs the reference backend. There is no state to
// initialize; NewHost exists so call sites read the same way regardless of
// which backend they construct.
func NewHost() *Host { return &Host{} }

func (*Host) Name() string { return "host" }

func (*Host) Alloc(n int) Array {
	return AlignedFloat64s(n)
}

func (*Host) Fill(dst View, v float64) {
	for i := range dst {
		dst[i] = v
	}
}

func (*Host) Copy(dst View, src ConstView) {
	copy(dst, src)
}

func (*Host) ScatterAdd(dst View, idx []int, src ConstView) {
	for i, ix := range idx {
		dst[ix] += src[i]
	}
}

func (*Host) GatherAt(dst View, src ConstView, idx []int) {
	for i, ix := range idx {
		dst[i] = src[ix]
	}
}

func (*Host) SolveTridiag(p []int, d, u, rhs View) error {
	return solveHines(p, d, u, rhs)
}
