// Command nestmcperf benchmarks the Host backend's kernels (fill, copy,
// scatter-add, gather, tridiagonal solve), following the teacher's
// cmd/sublperf: flag-selected test type, size, iteration count, and a
// throughput report printed to stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/nestmc/nestmc/backend"
)

var (
	testType = flag.String("test", "all", "Test type: all, elementwise, tridiag")
	size     = flag.Int("size", 1024, "Test data size")
	iter     = flag.Int("iter", 1000, "Number of iterations")
)

func main() {
	flag.Parse()

	fmt.Printf("nestmc Performance Analysis Tool\n")
	fmt.Printf("=================================\n")
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("CPUs: %d\n", runtime.NumCPU())
	fmt.Printf("Backend: %s\n", backend.NewHost().Name())
	fmt.Printf("Test Size: %d elements\n", *size)
	fmt.Printf("Iterations: %d\n\n", *iter)

	switch *testType {
	case "all":
		runElementwiseTests()
		runTridiagTests()
	case "elementwise":
		runElementwiseTests()
	case "tridiag":
		runTridiagTests()
	default:
		fmt.Printf("Unknown test type: %s\n", *testType)
		os.Exit(1)
	}
}

func runElementwiseTests() {
	fmt.Printf("Elementwise Kernel Performance\n")
	fmt.Printf("------------------------------\n")

	b := backend.NewHost()
	n := *size
	dst := b.Alloc(n)
	src := b.Alloc(n)
	for i := range src {
		src[i] = float64(i)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = n - 1 - i
	}

	start := time.Now()
	for i := 0; i < *iter; i++ {
		b.Fill(dst, 1.0)
	}
	fillTime := time.Since(start)

	start = time.Now()
	for i := 0; i < *iter; i++ {
		b.Copy(dst, src)
	}
	copyTime := time.Since(start)

	start = time.Now()
	for i := 0; i < *iter; i++ {
		b.ScatterAdd(dst, idx, src)
	}
	scatterTime := time.Since(start)

	start = time.Now()
	for i := 0; i < *iter; i++ {
		b.GatherAt(dst, src, idx)
	}
	gatherTime := time.Since(start)

	report("fill", n, *iter, fillTime)
	report("copy", n, *iter, copyTime)
	report("scatter_add", n, *iter, scatterTime)
	report("gather_at", n, *iter, gatherTime)
	fmt.Println()
}

func runTridiagTests() {
	fmt.Printf("Tridiagonal Solve Performance\n")
	fmt.Printf("-----------------------------\n")

	b := backend.NewHost()
	n := *size
	p := make([]int, n)
	for i := range p {
		if i == 0 {
			p[i] = 0
		} else {
			p[i] = i - 1
		}
	}

	d := b.Alloc(n)
	u := b.Alloc(n)
	rhs := b.Alloc(n)

	start := time.Now()
	for i := 0; i < *iter; i++ {
		for j := range d {
			d[j] = 2
			u[j] = -1
			rhs[j] = 1
		}
		if err := b.SolveTridiag(p, d, u, rhs); err != nil {
			fmt.Printf("solve failed: %v\n", err)
			os.Exit(1)
		}
	}
	solveTime := time.Since(start)

	report("solve_tridiag", n, *iter, solveTime)
	fmt.Println()
}

func report(name string, n, iterations int, elapsed time.Duration) {
	perOp := elapsed / time.Duration(iterations)
	throughput := float64(n) * float64(iterations) / elapsed.Seconds() / 1e6
	fmt.Printf("%-14s n=%-6d iter=%-6d total=%-12s per_op=%-12s %.2f Mops/s\n",
		name, n, iterations, elapsed, perOp, throughput)
}
