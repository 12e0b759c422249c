// Package bench times counting functions on generated input.
package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomLetters returns n ASCII letters drawn from [a-zA-Z].
// The same seed always yields the same string.
func RandomLetters(n int, seed uint64) string {
	if n <= 0 {
		return ""
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(letters[rng.IntN(len(letters))])
	}
	return sb.String()
}

// Case is a single benchmark.
type Case struct {
	Name string
	Func func()
}

// Result is the outcome of timing one Case.
type Result struct {
	Name    string
	Runs    int
	Elapsed time.Duration
}

// PerOp returns the mean duration of one run.
func (r Result) PerOp() time.Duration {
	if r.Runs == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Runs)
}

// Run times each case. After one warm-up call it grows the run count until a
// single timed batch takes at least target. It stops early with ctx's error
// if ctx is cancelled between batches.
func Run(ctx context.Context, cases []Case, target time.Duration) ([]Result, error) {
	if target <= 0 {
		target = time.Second
	}
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		c.Func()

		n := 1
		var elapsed time.Duration
		for {
			start := time.Now()
			for range n {
				c.Func()
			}
			elapsed = time.Since(start)
			if elapsed >= target {
				break
			}
			if err := ctx.Err(); err != nil {
				return results, err
			}
			// Scale up: aim for target based on current rate
			if elapsed > 0 {
				next := int(float64(n) * float64(target) / float64(elapsed))
				if next <= n {
					next = n * 2
				}
				n = next
			} else {
				n *= 10
			}
		}
		results = append(results, Result{Name: c.Name, Runs: n, Elapsed: elapsed})
	}
	return results, nil
}

// Colorizer styles report columns.
type Colorizer interface {
	Bold(s string) string
	Cyan(s string) string
	Yellow(s string) string
}

// Report writes one line per result.
func Report(w io.Writer, results []Result, c Colorizer) {
	for _, r := range results {
		fmt.Fprintf(w, "  %s %s %s\n",
			c.Bold(fmt.Sprintf("%-40s", r.Name)),
			c.Cyan(fmt.Sprintf("%10s/op", FormatDuration(r.PerOp()))),
			c.Yellow(fmt.Sprintf("(%d runs)", r.Runs)))
	}
}

// FormatDuration formats a per-operation duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	ns := float64(d.Nanoseconds())
	switch {
	case ns < 1000:
		return fmt.Sprintf("%.1f ns", ns)
	case ns < 1000000:
		return fmt.Sprintf("%.1f µs", ns/1000)
	case ns < 1000000000:
		return fmt.Sprintf("%.1f ms", ns/1000000)
	default:
		return fmt.Sprintf("%.2f s", ns/1000000000)
	}
}
