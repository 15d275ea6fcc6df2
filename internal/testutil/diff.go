package testutil

import (
	"fmt"
	"strings"

	"github.com/aryann/difflib"
)

// Diff returns a line diff of expected and actual output, or "" when they
// are equal. Lines are numbered after the expected side.
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}
	var sb strings.Builder
	line := 0
	for _, rec := range difflib.Diff(strings.Split(expected, "\n"), strings.Split(actual, "\n")) {
		switch rec.Delta {
		case difflib.Common:
			line++
			continue
		case difflib.LeftOnly:
			line++
		}
		fmt.Fprintf(&sb, "L%04d: %s\n", line, rec)
	}
	if sb.Len() == 0 {
		// Only whitespace at line ends differs.
		fmt.Fprintf(&sb, "expected %q\nactual   %q\n", expected, actual)
	}
	return sb.String()
}
