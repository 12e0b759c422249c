package colormod

import "os"

// --- color module ---

// Color wraps text in ANSI escapes unless NO_COLOR is set.
type Color struct{}

func colorize(code, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (*Color) Red(s string) string    { return colorize("31", s) }
func (*Color) Green(s string) string  { return colorize("32", s) }
func (*Color) Yellow(s string) string { return colorize("33", s) }
func (*Color) Cyan(s string) string   { return colorize("36", s) }
func (*Color) Gray(s string) string   { return colorize("90", s) }

func (*Color) Bold(s string) string { return colorize("1", s) }
func (*Color) Dim(s string) string  { return colorize("2", s) }
