// Command nestmcrun builds a network from flags, runs the simulator to
// t_final, and optionally writes a per-rank spike file, following the
// teacher's cmd/sublrun: flag-based options, log.Fatalf on any fatal error,
// a -verbose switch for progress output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nestmc/nestmc/backend"
	"github.com/nestmc/nestmc/comm"
	"github.com/nestmc/nestmc/config"
	"github.com/nestmc/nestmc/core"
	"github.com/nestmc/nestmc/domain"
	"github.com/nestmc/nestmc/driver"
	"github.com/nestmc/nestmc/mechanism"
	"github.com/nestmc/nestmc/recipe"
)

func main() {
	var (
		cells                  = flag.Int("cells", 100, "Number of cells")
		ring                   = flag.Bool("ring", false, "Build a ring network")
		allToAll               = flag.Bool("all-to-all", false, "Build an all-to-all network")
		weight                 = flag.Float64("weight", 0.5, "Connection weight")
		delay                  = flag.Float64("delay", 1.0, "Connection delay (ms)")
		groupSize              = flag.Int("group-size", 1, "Cells per cell group")
		synapsesPerCell        = flag.Int("synapses-per-cell", 1, "Point-synapse instances per cell")
		synType                = flag.String("syn-type", "expsyn", "Synapse kind: expsyn or exp2syn")
		compartmentsPerSegment = flag.Int("compartments-per-segment", 1, "Compartments per cell")
		tFinal                 = flag.Float64("tfinal", 50, "Simulation end time (ms)")
		dt                     = flag.Float64("dt", 0.01, "Integration step (ms)")
		probeRatio             = flag.Float64("probe-ratio", 0, "Fraction of cells to record a voltage trace for")
		probeSomaOnly          = flag.Bool("probe-soma-only", false, "Probe only the root compartment instead of every compartment")
		tracePrefix            = flag.String("trace-prefix", "trace", "Trace file base name, used when probe-ratio > 0")
		traceMaxGID            = flag.Int64("trace-max-gid", -1, "Never probe a cell with gid above this (-1 means unbounded)")
		spikeOutput            = flag.Bool("spike-file-output", false, "Write a spike file")
		singleFilePerRank      = flag.Bool("single-file-per-rank", true, "Write this rank's spikes to its own file instead of a shared one")
		outputPath             = flag.String("output-path", ".", "Spike/trace file output directory")
		fileName               = flag.String("file-name", "spikes", "Spike file base name")
		fileExtension          = flag.String("file-extension", "gdf", "Spike file extension")
		overWrite              = flag.Bool("over-write", false, "Allow overwriting an existing spike file")
		rank                   = flag.Int("rank", 0, "This process's rank, for the spike file name")
		verbose                = flag.Bool("verbose", false, "Enable verbose output")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.Cells = *cells
	cfg.Ring = *ring
	cfg.AllToAll = *allToAll
	cfg.GroupSize = *groupSize
	cfg.SynapsesPerCell = *synapsesPerCell
	cfg.SynType = *synType
	cfg.CompartmentsPerSegment = *compartmentsPerSegment
	cfg.TFinal = *tFinal
	cfg.DT = *dt
	cfg.ProbeRatio = *probeRatio
	cfg.ProbeSomaOnly = *probeSomaOnly
	cfg.TracePrefix = *tracePrefix
	if *traceMaxGID >= 0 {
		gid := core.CellGID(*traceMaxGID)
		cfg.TraceMaxGID = &gid
	}
	cfg.SpikeFileOutput = *spikeOutput
	cfg.SingleFilePerRank = *singleFilePerRank
	cfg.OutputPath = *outputPath
	cfg.FileName = *fileName
	cfg.FileExtension = *fileExtension
	cfg.OverWrite = *overWrite

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "nestmcrun: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	var spikePath string
	if cfg.SpikeFileOutput {
		if cfg.SingleFilePerRank {
			spikePath = driver.SpikeFilePath(cfg.OutputPath, cfg.FileName, *rank, cfg.FileExtension)
		} else {
			spikePath = driver.SharedSpikeFilePath(cfg.OutputPath, cfg.FileName, cfg.FileExtension)
		}
		if err := driver.PreflightSpikeFile(spikePath, cfg.OverWrite); err != nil {
			log.Fatalf("nestmcrun: %v", err)
		}
	}

	params := recipe.NetworkParams{
		Cells:                  cfg.Cells,
		Weight:                 *weight,
		Delay:                  *delay,
		CompartmentsPerSegment: cfg.CompartmentsPerSegment,
		SynapsesPerCell:        cfg.SynapsesPerCell,
		SynType:                cfg.SynType,
		ProbeRatio:             cfg.ProbeRatio,
		ProbeSomaOnly:          cfg.ProbeSomaOnly,
		TraceMaxGID:            cfg.TraceMaxGID,
	}

	var rec recipe.Recipe
	switch {
	case cfg.Ring:
		rec = recipe.Ring(params)
	case cfg.AllToAll:
		rec = recipe.AllToAll(params)
	default:
		rec = recipe.Ring(params)
	}

	decomp, err := domain.EvenSplit(0, core.CellGID(cfg.Cells), cfg.GroupSize)
	if err != nil {
		log.Fatalf("nestmcrun: %v", err)
	}

	b := backend.NewHost()
	reg := mechanism.NewRegistry()

	groups, err := driver.BuildGroups(b, reg, rec, decomp)
	if err != nil {
		log.Fatalf("nestmcrun: %v", err)
	}
	communicator, err := driver.BuildCommunicator(rec, decomp, comm.SerialPolicy{})
	if err != nil {
		log.Fatalf("nestmcrun: %v", err)
	}

	if *verbose {
		fmt.Printf("nestmcrun: %d cells in %d group(s), tfinal=%g dt=%g\n", cfg.Cells, decomp.NumGroups(), cfg.TFinal, cfg.DT)
	}

	d := driver.New(groups, communicator, cfg.DT)
	if err := d.Run(cfg.TFinal); err != nil {
		log.Fatalf("nestmcrun: %v", err)
	}

	if *verbose {
		fmt.Printf("nestmcrun: %d spikes exchanged over the run\n", communicator.NumSpikes())
	}

	if cfg.SpikeFileOutput {
		if err := driver.WriteSpikeFile(spikePath, d.Recorded()); err != nil {
			log.Fatalf("nestmcrun: %v", err)
		}
		if *verbose {
			fmt.Printf("nestmcrun: wrote %s\n", spikePath)
		}
	}

	if cfg.ProbeRatio > 0 {
		if err := driver.WriteTraceFiles(cfg.OutputPath, cfg.TracePrefix, d.Groups()); err != nil {
			log.Fatalf("nestmcrun: %v", err)
		}
		if *verbose {
			fmt.Printf("nestmcrun: wrote traces with prefix %s\n", cfg.TracePrefix)
		}
	}
}
