package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/stringdoubles/doc"
	"github.com/rubiojr/stringdoubles/doubles"
	"github.com/rubiojr/stringdoubles/modules"
	"github.com/rubiojr/stringdoubles/textio"
)

const moduleName = "string_doubles"

// Execute runs the CLI with the given version string.
// Import modules via blank imports before calling this function
// so they register via init().
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := New(version).Run(ctx, os.Args); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// New builds the root command.
func New(version string) *cli.Command {
	return &cli.Command{
		Name:                   "stringdoubles",
		Usage:                  "Count adjacent repeated characters in text",
		Version:                version,
		UseShortOptionHandling: true,
		Flags:                  countFlags(true),
		// Allow `stringdoubles aabb` as shorthand for `stringdoubles count aabb`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 || !isTerminal(cmd.Root().Reader) {
				return countAction(ctx, cmd)
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "Count adjacent equal code points and bytes",
				ArgsUsage: "[text...]",
				Flags:     countFlags(false),
				Action:    countAction,
			},
			{
				Name:      "call",
				Usage:     "Call a module function through the host runtime",
				ArgsUsage: "<module.func> [args...]",
				Action:    callAction,
			},
			{
				Name:      "doc",
				Usage:     "Show module documentation",
				ArgsUsage: "[module | module.func]",
				Action:    docAction,
			},
			{
				Name:  "bench",
				Usage: "Benchmark the counting functions on random letters",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "size",
						Usage: "Number of random letters",
						Value: 1_000_000,
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Random seed",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "time",
						Usage: "Minimum timed batch per benchmark",
						Value: defaultBenchTime,
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: benchAction,
			},
		},
	}
}

// countFlags returns the flags shared by `count` and the root shorthand.
// The root's copies are local so they are not inherited by other commands.
func countFlags(local bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Element model: codepoints, bytes or both",
			Value:   "both",
			Local:   local,
		},
		&cli.BoolFlag{
			Name:    "bytes",
			Aliases: []string{"b"},
			Usage:   "Count bytes only (same as --model bytes)",
			Local:   local,
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read text from a file",
			Local:   local,
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "Input encoding for files and stdin: auto, utf-8, utf-16le, utf-16be",
			Value:   "auto",
			Sources: cli.EnvVars("STRINGDOUBLES_ENCODING"),
			Local:   local,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print results as JSON",
			Local: local,
		},
	}
}

// funcFor maps an element model to the module function counting under it.
func funcFor(m doubles.Model) string {
	if m == doubles.Bytes {
		return "count_doubles_bytes"
	}
	return "count_doubles"
}

func countAction(ctx context.Context, cmd *cli.Command) error {
	models, err := selectedModels(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	type entry struct {
		name  string
		count int
	}
	var results []entry
	for _, m := range models {
		fn := funcFor(m)
		v, err := modules.Call(moduleName, fn, text)
		if err != nil {
			return err
		}
		results = append(results, entry{name: fn, count: v.(int)})
	}

	w := cmd.Root().Writer
	if cmd.Bool("json") {
		out := make(map[string]int, len(results))
		for _, r := range results {
			out[r.name] = r.count
		}
		enc := json.NewEncoder(w)
		return enc.Encode(out)
	}
	if len(results) == 1 {
		_, err := fmt.Fprintln(w, results[0].count)
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", r.name, r.count); err != nil {
			return err
		}
	}
	return nil
}

func selectedModels(cmd *cli.Command) ([]doubles.Model, error) {
	if cmd.Bool("bytes") {
		return []doubles.Model{doubles.Bytes}, nil
	}
	name := cmd.String("model")
	if strings.EqualFold(name, "both") || name == "" {
		return []doubles.Model{doubles.CodePoints, doubles.Bytes}, nil
	}
	m, err := doubles.ParseModel(name)
	if err != nil {
		return nil, err
	}
	return []doubles.Model{m}, nil
}

// readInput returns the text to count from --file, the arguments, or stdin,
// in that order. Arguments are joined with single spaces.
func readInput(cmd *cli.Command) (string, error) {
	enc, err := textio.ParseEncoding(cmd.String("encoding"))
	if err != nil {
		return "", err
	}
	if path := cmd.String("file"); path != "" {
		return textio.ReadFile(path, enc)
	}
	if cmd.NArg() > 0 {
		text := strings.Join(cmd.Args().Slice(), " ")
		if err := textio.Validate(text); err != nil {
			return "", fmt.Errorf("argument: %w", err)
		}
		return text, nil
	}
	r := cmd.Root().Reader
	if isTerminal(r) {
		return "", fmt.Errorf("usage: stringdoubles count <text...> (or pipe text on stdin, or use --file)")
	}
	text, err := textio.ReadAll(r, enc)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return textio.StripNewline(text), nil
}

func callAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: stringdoubles call <module.func> [args...]")
	}
	modName, fn, ok := modules.SplitQualified(cmd.Args().First())
	if !ok {
		return fmt.Errorf("expected module.func, got %q", cmd.Args().First())
	}
	tail := cmd.Args().Tail()
	args := make([]interface{}, len(tail))
	for i, a := range tail {
		args[i] = a
	}
	v, err := modules.Call(modName, fn, args...)
	if err != nil {
		return err
	}
	if v != nil {
		fmt.Fprintln(cmd.Root().Writer, v)
	}
	return nil
}

func docAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	if cmd.NArg() == 0 {
		_, err := io.WriteString(w, doc.FormatAllModules())
		return err
	}
	out, err := doc.Lookup(cmd.Args().First())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
