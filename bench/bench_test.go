package bench

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomLetters(t *testing.T) {
	s := RandomLetters(1000, 42)
	assert.Len(t, s, 1000)
	for i := 0; i < len(s); i++ {
		require.True(t, strings.IndexByte(letters, s[i]) >= 0, "byte %q at %d", s[i], i)
	}

	assert.Equal(t, s, RandomLetters(1000, 42), "same seed")
	assert.NotEqual(t, s, RandomLetters(1000, 43), "different seed")
	assert.Equal(t, "", RandomLetters(0, 1))
	assert.Equal(t, "", RandomLetters(-5, 1))
}

func TestRun(t *testing.T) {
	calls := 0
	results, err := Run(context.Background(), []Case{
		{Name: "sleepy", Func: func() { calls++; time.Sleep(time.Millisecond) }},
	}, 5*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "sleepy", r.Name)
	assert.GreaterOrEqual(t, r.Elapsed, 5*time.Millisecond)
	assert.GreaterOrEqual(t, r.Runs, 1)
	assert.Greater(t, calls, r.Runs, "warm-up and calibration batches also call Func")
	assert.Greater(t, r.PerOp(), time.Duration(0))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, []Case{{Name: "x", Func: func() {}}}, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestPerOpZeroRuns(t *testing.T) {
	assert.Equal(t, time.Duration(0), Result{}.PerOp())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500.0 ns"},
		{1500 * time.Nanosecond, "1.5 µs"},
		{2500 * time.Microsecond, "2.5 ms"},
		{3 * time.Second, "3.00 s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}

type plain struct{}

func (plain) Bold(s string) string   { return s }
func (plain) Cyan(s string) string   { return s }
func (plain) Yellow(s string) string { return s }

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []Result{{Name: "count_doubles", Runs: 10, Elapsed: 20 * time.Millisecond}}, plain{})

	out := buf.String()
	assert.Contains(t, out, "count_doubles")
	assert.Contains(t, out, "2.0 ms/op")
	assert.Contains(t, out, "(10 runs)")
}
