package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/stringdoubles/bench"
	"github.com/rubiojr/stringdoubles/doubles"
	"github.com/rubiojr/stringdoubles/modules"
	colormod "github.com/rubiojr/stringdoubles/modules/color"
)

const defaultBenchTime = time.Second

func benchAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	// Set NO_COLOR if --no-color flag, non-interactive, or NO_COLOR already set.
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" || !isTerminal(w) {
		os.Setenv("NO_COLOR", "1")
	}

	size := int(cmd.Int("size"))
	if size < 0 {
		return fmt.Errorf("--size must not be negative")
	}
	val := bench.RandomLetters(size, uint64(cmd.Int("seed")))

	hostCall, err := hostCallCase(moduleName, "count_doubles", val)
	if err != nil {
		return err
	}
	cases := []bench.Case{
		{Name: "count_doubles", Func: func() { doubles.Count(val) }},
		{Name: "count_doubles_bytes", Func: func() { doubles.CountBytes(val) }},
		hostCall,
	}

	c := &colormod.Color{}
	fmt.Fprintf(w, "%s %d random letters, %d doubles\n",
		c.Bold("input:"), size, doubles.Count(val))

	results, err := bench.Run(ctx, cases, cmd.Duration("time"))
	bench.Report(w, results, c)
	return err
}

// hostCallCase builds a case timing modules.Call for module.fn on val. The
// call is made once up front so a failing function is reported before any
// timing starts; the timed calls cannot fail after that.
func hostCallCase(module, fn, val string) (bench.Case, error) {
	if _, err := modules.Call(module, fn, val); err != nil {
		return bench.Case{}, err
	}
	return bench.Case{
		Name: module + "." + fn + " (host call)",
		Func: func() { _, _ = modules.Call(module, fn, val) },
	}, nil
}
