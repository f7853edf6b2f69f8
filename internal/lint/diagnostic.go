package lint

// Severity indicates the severity level of a finding.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Finding represents a single rule violation anchored to a contiguous
// line range. StartLine and EndLine are 1-based and inclusive;
// StartLine <= EndLine for a valid finding.
type Finding struct {
	File       string
	StartLine  int
	EndLine    int
	RuleID     string
	RuleName   string
	Severity   Severity
	Importance int
	Message    string
}

// Annotation is the final emitted unit: a finding reduced to a single
// anchor line after suppression filtering, ranking and truncation.
type Annotation struct {
	File       string
	Line       int
	RuleID     string
	RuleName   string
	Severity   Severity
	Importance int
	Message    string
}
