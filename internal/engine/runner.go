package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/jeduden/hclmark/internal/config"
	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/log"
	"github.com/jeduden/hclmark/internal/rule"
)

// ParseRuleID identifies the synthetic annotation emitted when a
// document fails to parse.
const ParseRuleID = "HM000"

// Runner drives the annotation pipeline over many files: for each file
// it reads the content, builds a Document, determines the effective
// rule configuration, and runs the pipeline. The per-document
// annotation cap and ranking apply to each file independently.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
	Log    *log.Logger
}

// RunResult holds the output of a run across all files. Annotations
// are grouped per file, in rank order within each file.
type RunResult struct {
	Annotations []lint.Annotation
	Errors      []error
}

// Run annotates the files at the given paths.
func (r *Runner) Run(ctx context.Context, paths []string) *RunResult {
	res := &RunResult{}

	for _, path := range paths {
		if r.isIgnored(path) {
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}

		fileRes := r.RunSource(ctx, path, source)
		res.Annotations = append(res.Annotations, fileRes.Annotations...)
		res.Errors = append(res.Errors, fileRes.Errors...)
	}

	return res
}

// RunSource annotates a single document given as raw source.
func (r *Runner) RunSource(ctx context.Context, path string, source []byte) *RunResult {
	res := &RunResult{}

	doc := lint.NewDocument(path, source)

	enabled, errs := EnabledRules(r.Rules, config.Effective(r.Config, path))
	res.Errors = append(res.Errors, errs...)

	pipeline := &Pipeline{
		Rules:            enabled,
		MaxAnnotations:   r.Config.MaxAnnotationsOrDefault(),
		SuppressionToken: r.Config.SuppressionTokenOrDefault(),
		Log:              r.Log,
	}

	pres := pipeline.Annotate(ctx, doc)
	res.Errors = append(res.Errors, pres.Errors...)
	res.Annotations = pres.Annotations

	// An unparseable document still completes the run: the parse
	// failure becomes the most critical annotation, ahead of
	// whatever the textual stages produced.
	if doc.ParseDiags.HasErrors() {
		ann := parseAnnotation(doc)
		res.Errors = append(res.Errors, fmt.Errorf("parsing %q: %s", path, doc.ParseDiags.Error()))
		res.Annotations = append([]lint.Annotation{ann}, res.Annotations...)
		if max := r.Config.MaxAnnotationsOrDefault(); len(res.Annotations) > max {
			res.Annotations = res.Annotations[:max]
		}
	}

	return res
}

// parseAnnotation builds the synthetic annotation for a parse failure,
// anchored at the first error's line (clamped into the document).
func parseAnnotation(doc *lint.Document) lint.Annotation {
	line := 1
	for _, diag := range doc.ParseDiags {
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
			break
		}
	}
	if line < 1 {
		line = 1
	}
	if n := doc.NumLines(); line > n {
		line = n
	}

	return lint.Annotation{
		File:       doc.Path,
		Line:       line,
		RuleID:     ParseRuleID,
		RuleName:   "invalid-syntax",
		Severity:   lint.Error,
		Importance: 1,
		Message:    fmt.Sprintf("HCL parse error: %s", doc.ParseDiags[0].Summary),
	}
}

// isIgnored returns true if the file path matches any of the configured
// ignore patterns.
func (r *Runner) isIgnored(path string) bool {
	cleanPath := filepath.Clean(path)

	for _, pattern := range r.Config.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}
