package lint

import (
	"bytes"
	"strings"
)

// DefaultSuppressionToken is the full-line directive that silences
// findings anchored on the immediately following line.
const DefaultSuppressionToken = "# hclmark:ignore-next-line"

// SuppressedLines scans lines for the suppression directive and returns
// the set of 1-based line numbers whose findings must be dropped. A
// directive at line N marks line N+1; a directive on the last line has
// nothing to mark and is a no-op. Detection is case-sensitive and
// matches only a line whose trimmed content equals the token exactly;
// directives embedded mid-line are not recognized.
func SuppressedLines(lines [][]byte, token string) map[int]bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return map[int]bool{}
	}

	suppressed := map[int]bool{}
	for i, line := range lines {
		if string(bytes.TrimSpace(line)) != token {
			continue
		}
		next := i + 2 // 1-based number of the following line
		if next > len(lines) {
			continue
		}
		suppressed[next] = true
	}
	return suppressed
}
