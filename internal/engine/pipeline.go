package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/jeduden/hclmark/internal/config"
	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/log"
	"github.com/jeduden/hclmark/internal/rule"
)

// Pipeline evaluates a rule catalog against a single document:
// match, suppression filtering, ranking/selection, and range
// normalization run sequentially over immutable inputs. A pipeline
// always completes; rule failures surface on the Result.Errors side
// channel and never abort the run.
type Pipeline struct {
	// Rules in catalog order. Ranking ties are broken by position
	// in this slice.
	Rules []rule.Rule

	// MaxAnnotations caps the emitted annotations. Non-positive
	// means the default cap of 3.
	MaxAnnotations int

	// SuppressionToken is the full-line directive that silences the
	// following line. Empty means the default token.
	SuppressionToken string

	Log *log.Logger
}

// Result holds the output of an annotation run.
type Result struct {
	Annotations []lint.Annotation
	Errors      []error
}

// Annotate runs the pipeline over a single document. The context is a
// best-effort deadline: when it expires, remaining rules are skipped
// and partial results returned, with a diagnostic recording the skip.
func (p *Pipeline) Annotate(ctx context.Context, doc *lint.Document) *Result {
	res := &Result{}

	raw := p.match(ctx, doc, res)
	suppressed := lint.SuppressedLines(doc.Lines, p.token())
	kept := FilterSuppressed(raw, suppressed)
	selected := SelectTop(kept, p.cap())
	res.Annotations = Normalize(selected)

	p.logf("%s: %d raw, %d after suppression, %d emitted",
		doc.Path, len(raw), len(kept), len(res.Annotations))
	return res
}

// match evaluates every rule against the document in catalog order and
// returns the validated raw findings. Each finding is stamped with its
// rule's importance so later stages need no catalog access.
func (p *Pipeline) match(ctx context.Context, doc *lint.Document, res *Result) []lint.Finding {
	var raw []lint.Finding

	for i, rl := range p.Rules {
		if ctx != nil && ctx.Err() != nil {
			res.Errors = append(res.Errors, fmt.Errorf(
				"deadline reached, skipped %d of %d rules: %w",
				len(p.Rules)-i, len(p.Rules), ctx.Err()))
			break
		}

		findings, err := checkRule(rl, doc)
		if err != nil {
			// One bad rule never aborts the run.
			res.Errors = append(res.Errors, err)
			p.logf("%s: rule %s failed: %v", doc.Path, rl.ID(), err)
			continue
		}

		for _, f := range findings {
			if f.StartLine < 1 || f.EndLine > doc.NumLines() || f.StartLine > f.EndLine {
				res.Errors = append(res.Errors, fmt.Errorf(
					"rule %s: dropped finding with invalid span %d-%d (document has %d lines)",
					rl.ID(), f.StartLine, f.EndLine, doc.NumLines()))
				continue
			}
			f.Importance = rl.Importance()
			raw = append(raw, f)
		}
	}

	return raw
}

// checkRule invokes a rule's predicate, converting a panic into an
// error so the matcher can isolate it.
func checkRule(rl rule.Rule, doc *lint.Document) (findings []lint.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("rule %s (%s) panicked: %v", rl.ID(), rl.Name(), r)
		}
	}()
	return rl.Check(doc), nil
}

// FilterSuppressed drops findings whose anchor line is marked by a
// suppression directive on the preceding line. Suppression is
// all-or-nothing per finding: a suppressed StartLine discards the
// whole range. Order is preserved.
func FilterSuppressed(findings []lint.Finding, suppressed map[int]bool) []lint.Finding {
	if len(suppressed) == 0 {
		return findings
	}
	kept := findings[:0:0]
	for _, f := range findings {
		if suppressed[f.StartLine] {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// SelectTop orders findings by importance ascending (most critical
// first), collapses exact duplicates (same rule, same range), and
// truncates to max. Equal-importance findings keep their input order,
// which is catalog order then matcher order.
func SelectTop(findings []lint.Finding, max int) []lint.Finding {
	deduped := make([]lint.Finding, 0, len(findings))
	seen := make(map[string]bool, len(findings))
	for _, f := range findings {
		key := fmt.Sprintf("%s:%d:%d", f.RuleID, f.StartLine, f.EndLine)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Importance < deduped[j].Importance
	})

	if max > 0 && len(deduped) > max {
		deduped = deduped[:max]
	}
	return deduped
}

// Normalize rewrites each selected finding to a single-line
// annotation anchored at the first line of its range.
func Normalize(findings []lint.Finding) []lint.Annotation {
	annotations := make([]lint.Annotation, 0, len(findings))
	for _, f := range findings {
		annotations = append(annotations, lint.Annotation{
			File:       f.File,
			Line:       f.StartLine,
			RuleID:     f.RuleID,
			RuleName:   f.RuleName,
			Severity:   f.Severity,
			Importance: f.Importance,
			Message:    f.Message,
		})
	}
	return annotations
}

func (p *Pipeline) cap() int {
	if p.MaxAnnotations > 0 {
		return p.MaxAnnotations
	}
	return config.DefaultMaxAnnotations
}

func (p *Pipeline) token() string {
	if p.SuppressionToken != "" {
		return p.SuppressionToken
	}
	return lint.DefaultSuppressionToken
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Printf(format, args...)
	}
}
