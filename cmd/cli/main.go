// Command robot-gnc runs a dead-reckoning simulation and writes the
// SimulationLog JSON to stdout.
//
// The input is a preset (-preset), a JSON or YAML file (-config or the first
// argument), or SimulationInput JSON on stdin. The run can additionally be
// plotted (-png, -html) and archived in SQLite (-db).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wbusacker/robot-gnc/internal/config"
	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/monitoring"
	"github.com/wbusacker/robot-gnc/internal/render"
	"github.com/wbusacker/robot-gnc/internal/store"
)

type options struct {
	configPath string
	preset     string
	seed       *uint64
	pngPath    string
	htmlPath   string
	dbPath     string
	quiet      bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("robot-gnc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "JSON or YAML simulation input file")
	fs.StringVar(&o.preset, "preset", "", "run a built-in scenario: "+strings.Join(config.PresetNames(), ", "))
	fs.Func("seed", "random seed, overriding the input's", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		o.seed = &v
		return nil
	})
	fs.StringVar(&o.pngPath, "png", "", "write a PNG plot of the trace to this path")
	fs.StringVar(&o.htmlPath, "html", "", "write an interactive HTML chart of the trace to this path")
	fs.StringVar(&o.dbPath, "db", "", "archive the run in this SQLite database")
	fs.BoolVar(&o.quiet, "quiet", false, "suppress progress logging on stderr")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

// loadInput resolves the input source in order: preset, -config, first
// argument, stdin.
func loadInput(o options, args []string, stdin io.Reader) (engine.SimulationInput, error) {
	path := o.configPath
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	switch {
	case o.preset != "" && path != "":
		return engine.SimulationInput{}, errors.New("-preset cannot be combined with an input file")
	case o.preset != "":
		return config.Preset(o.preset)
	case path != "":
		return config.Load(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return engine.SimulationInput{}, fmt.Errorf("error reading input: %w", err)
	}
	return config.Parse(data, config.FormatJSON)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.quiet {
		monitoring.SetLogger(nil)
	}

	input, err := loadInput(o, rest, stdin)
	if err != nil {
		return err
	}
	if o.seed != nil {
		input.Meta.Seed = o.seed
	}

	simLog, err := engine.Run(input)
	if err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	if o.pngPath != "" {
		if err := render.SavePNG(o.pngPath, simLog); err != nil {
			return err
		}
		monitoring.Logf("wrote plot %s", o.pngPath)
	}
	if o.htmlPath != "" {
		if err := render.SaveHTML(o.htmlPath, simLog); err != nil {
			return err
		}
		monitoring.Logf("wrote chart %s", o.htmlPath)
	}
	if o.dbPath != "" {
		if err := archive(ctx, o.dbPath, simLog); err != nil {
			return err
		}
	}

	out, err := json.Marshal(simLog)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func archive(ctx context.Context, path string, simLog engine.SimulationLog) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, simLog)
	if err != nil {
		return fmt.Errorf("archiving run: %w", err)
	}
	monitoring.Logf("archived run %s as %d in %s", simLog.Meta.SimulationID, id, path)
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
