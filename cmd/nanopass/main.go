// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"

	"nanopass/internal/config"
	nperrors "nanopass/internal/errors"
	"nanopass/internal/examples"
	"nanopass/internal/pipeline"
)

func main() {
	runCmd := &cli.Command{
		Name:        "run",
		Description: "lower example programs and print the selected stages",
		Action:      runAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("config,c", "", "configuration file (nanopass.toml is used when present)"),
			cli.NewFlag("width,w", 0, "column limit for rendered IR"),
			cli.NewFlag("stage,s", "", "comma separated stages to print: "+strings.Join(pipeline.StageNames(), ", ")),
			cli.NewFlag("parallel,p", false, "translate the functions of a program concurrently"),
			cli.NewFlag("no-check", false, "skip the invariant checks after each stage"),
			cli.NewFlag("verbose,v", false, "log every stage of every function"),
		},
	}

	listCmd := &cli.Command{
		Name:        "list",
		Description: "list the built-in example programs and the pipeline stages",
		Action:      listAct,
	}

	app := &cli.Command{
		Name:        "nanopass",
		Description: "nanopass lowers expression programs through simplify, normalize and callconv",
		Commands: []*cli.Command{
			runCmd,
			listCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func runAct(c *cli.Command) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if w := c.Int("width"); w > 0 {
		cfg.Width = w
	}
	if s := c.String("stage"); s != "" {
		cfg.Stages = config.SplitList(s)
	}
	if c.Bool("parallel") {
		cfg.Parallel = true
	}
	if c.Bool("no-check") {
		cfg.Check = false
	}
	if c.Bool("verbose") && cfg.Verbosity < 2 {
		cfg.Verbosity = 2
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "flags")
	}

	if !cfg.Color {
		color.NoColor = true
	}
	commonlog.Configure(cfg.Verbosity, nil)

	names := []string(c.Args)
	if len(names) == 0 {
		names = cfg.Examples
	}

	return run(os.Stdout, cfg, names)
}

// run lowers each named example, or all of them when names is empty
func run(w io.Writer, cfg *config.Config, names []string) error {
	selected, err := selectExamples(names)
	if err != nil {
		return err
	}

	failed := 0

	for _, ex := range selected {
		start := time.Now()

		result, err := pipeline.Compile(ex.Build(), cfg.Options())
		if err != nil {
			failed++

			if ce, ok := err.(*nperrors.CompilerError); ok {
				fmt.Fprint(w, nperrors.NewErrorReporter(ex.Name).FormatError(ce))
			} else {
				fmt.Fprintf(w, "%s: %v\n", ex.Name, err)
			}

			fmt.Fprintln(w, color.RedString("Lowering %s failed after %s", ex.Name, formatDuration(time.Since(start))))
			continue
		}

		fmt.Fprintln(w, color.CyanString(";; %s: %s", ex.Name, ex.Description))

		for _, stage := range cfg.Stages {
			out, err := pipeline.Dump(result, stage, cfg.Width)
			if err != nil {
				return errors.Wrap(err, "dump %v", ex.Name)
			}

			fmt.Fprintln(w, color.New(color.Bold).Sprintf(";; %s", stage))
			fmt.Fprint(w, out)
		}

		fmt.Fprintln(w, color.GreenString("Lowered %s in %s", ex.Name, formatDuration(result.Elapsed)))
		fmt.Fprintln(w)
	}

	if failed > 0 {
		return errors.New("%d of %d examples failed", failed, len(selected))
	}

	return nil
}

func selectExamples(names []string) ([]examples.Example, error) {
	if len(names) == 0 {
		return examples.All(), nil
	}

	selected := make([]examples.Example, 0, len(names))
	for _, name := range names {
		ex, ok := examples.Lookup(name)
		if !ok {
			return nil, errors.New("unknown example %q (see nanopass list)", name)
		}
		selected = append(selected, ex)
	}

	return selected, nil
}

func listAct(c *cli.Command) error {
	list(os.Stdout)
	return nil
}

func list(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(w, bold("Examples:"))
	for _, ex := range examples.All() {
		fmt.Fprintf(w, "  %-20s %s\n", ex.Name, ex.Description)
	}

	fmt.Fprintln(w, bold("Stages:"))
	fmt.Fprintf(w, "  %-20s %s\n", pipeline.SurfaceStage, "the input program")
	for _, stage := range pipeline.Stages() {
		fmt.Fprintf(w, "  %-20s %s\n", stage.Name(), stage.Description())
	}
}

func formatDuration(d time.Duration) string {
	for _, u := range durationUnits {
		if d >= u.unit {
			return fmt.Sprintf(u.format, float64(d)/float64(u.unit))
		}
	}
	return fmt.Sprintf("%dns", d.Nanoseconds())
}

// durationUnits is ordered from the largest unit down
var durationUnits = []struct {
	unit   time.Duration
	format string
}{
	{time.Minute, "%.2fmin"},
	{time.Second, "%.2fs"},
	{time.Millisecond, "%.1fms"},
	{time.Microsecond, "%.1fμs"},
}
