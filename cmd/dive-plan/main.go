// Command dive-plan runs a scripted dive profile through the ZH-L16C
// decompression engine and prints ceiling, GF99, and oxygen toxicity after
// each segment, finishing with a decompression plan if one is required or
// the remaining NDL otherwise.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/deepwater-eng/buhlmann"
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// segment is one leg of a scripted dive profile: descend/hold at DepthM
// for Minutes on the given gas.
type segment struct {
	DepthM  float64
	Minutes float64
	Gas     gas.Gas
}

func main() {
	profileFlag := flag.String("profile", "18:20,25:15", "comma-separated depth:minutes segments, e.g. 18:20,25:15")
	gfLow := flag.Uint("gf-low", 50, "gradient factor low, 1-100")
	gfHigh := flag.Uint("gf-high", 85, "gradient factor high, 1-100")
	fo2 := flag.Float64("fo2", 0.21, "breathing gas fraction of oxygen")
	fhe := flag.Float64("fhe", 0.0, "breathing gas fraction of helium")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dive-plan %s\n", version)
		os.Exit(0)
	}

	segments, err := parseProfile(*profileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing profile: %v\n", err)
		os.Exit(1)
	}

	g, err := gas.New(*fo2, *fhe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building gas: %v\n", err)
		os.Exit(1)
	}
	for i := range segments {
		if segments[i].Gas == (gas.Gas{}) {
			segments[i].Gas = g
		}
	}

	cfg := buhlmann.DefaultConfig()
	cfg.GF.Low = uint8(*gfLow)
	cfg.GF.High = uint8(*gfHigh)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	model, err := buhlmann.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating model: %v\n", err)
		os.Exit(1)
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	for _, seg := range segments {
		target := units.Depth(seg.DepthM)
		if err := model.RecordTravel(target, units.TimeFromMinutes(2), seg.Gas); err != nil {
			fmt.Fprintf(os.Stderr, "error descending to %.1fm: %v\n", seg.DepthM, err)
			os.Exit(1)
		}
		if err := model.Record(target, units.TimeFromMinutes(seg.Minutes), seg.Gas); err != nil {
			fmt.Fprintf(os.Stderr, "error holding at %.1fm: %v\n", seg.DepthM, err)
			os.Exit(1)
		}
		printStatus(model, seg.Gas, interactive)
	}

	if model.InDeco() {
		plan, err := model.Deco([]gas.Gas{segments[len(segments)-1].Gas})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error planning decompression: %v\n", err)
			os.Exit(1)
		}
		printPlan(plan)
	} else {
		fmt.Printf("no decompression obligation; NDL remaining %.0f min\n", model.NDL().Minutes())
	}
}

func printStatus(m *buhlmann.Model, g gas.Gas, interactive bool) {
	ss := m.Supersaturation()
	elapsedSeconds := humanize.Comma(int64(m.Elapsed().Seconds()))
	fmt.Printf("depth %5.1fm  elapsed %6.1fmin (%ss)  ceiling %5.1fm  gf99 %5.1f%%  cns %5.1f%%  otu %6.2f\n",
		m.Depth().Meters(), m.Elapsed().Minutes(), elapsedSeconds, m.Ceiling().Meters(), ss.GF99, m.CNS(), m.OTU())
	if interactive && m.InDeco() {
		fmt.Println("  -- decompression obligation incurred --")
	}
}

func printPlan(plan *buhlmann.DecoPlan) {
	fmt.Println("decompression plan:")
	for _, stage := range plan.Stages {
		fmt.Printf("  %-24s %6.1fm -> %6.1fm  %5.0fs  %s\n",
			stage.Type.String(), stage.StartDepth.Meters(), stage.EndDepth.Meters(),
			stage.Duration.Seconds(), stage.Gas.String())
	}
	fmt.Printf("total time to surface: %.1f min (%s sec), +5min contingency: %.1f min, delta %.1f min\n",
		plan.TTS.Minutes(), humanize.Comma(int64(plan.TTS.Seconds())), plan.TTSPlus5.Minutes(), plan.TTSDelta.Minutes())
}

// parseProfile parses "depth:minutes,depth:minutes,..." into a segment
// list. Gas defaults to the CLI-wide breathing gas.
func parseProfile(spec string) ([]segment, error) {
	var segments []segment
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 2 {
			return nil, fmt.Errorf("segment %q must be depth:minutes", part)
		}
		depth, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", part, err)
		}
		minutes, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", part, err)
		}
		segments = append(segments, segment{DepthM: depth, Minutes: minutes})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("profile must contain at least one segment")
	}
	return segments, nil
}
