package rule

import "github.com/jeduden/hclmark/internal/lint"

// Rule is a single best-practice rule that checks an HCL document.
// Importance is an ordinal rank used to select the top findings:
// 1 is most critical, larger values matter less. Ties are broken by
// registration (catalog) order.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Importance() int
	Check(d *lint.Document) []lint.Finding
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}
