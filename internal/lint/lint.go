// File: internal/lint/lint.go

// Package lint pre-flights taint catalog files before they are committed to
// a live analysis configuration: every entry is checked against the
// descriptor and summary grammars and its state token is resolved against
// the taint-state domain, without mutating any catalog.
package lint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/kuhnmi/find-sec-bugs/internal/config"
	"github.com/kuhnmi/find-sec-bugs/internal/taint"
)

// Finding describes one invalid catalog entry.
type Finding struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Entry  string `json:"entry"`
	Reason string `json:"reason"`
}

// Report is the outcome of one lint run across one or more catalog files.
type Report struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Files     []string  `json:"files"`
	Checked   int       `json:"checked"`
	Findings  []Finding `json:"findings"`
	Truncated bool      `json:"truncated,omitempty"`
}

// Clean reports whether the run found no invalid entries.
func (r *Report) Clean() bool { return len(r.Findings) == 0 }

// WriteJSON encodes the report for machine consumers.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders a human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "%s:%d: %s (%q)\n", f.File, f.Line, f.Reason, f.Entry); err != nil {
			return err
		}
	}
	status := "clean"
	if !r.Clean() {
		status = fmt.Sprintf("%d invalid", len(r.Findings))
	}
	if r.Truncated {
		status += " (truncated)"
	}
	_, err := fmt.Fprintf(w, "checked %d entries across %d file(s): %s\n",
		r.Checked, len(r.Files), status)
	return err
}

// Runner validates catalog files against a fixed state domain.
type Runner struct {
	loader *taint.ClassConfigLoader
	logger *zap.Logger
	cfg    config.LintConfig
}

// NewRunner builds a runner. A nil domain selects the default taint-state
// domain.
func NewRunner(domain *taint.Domain, logger *zap.Logger, cfg config.LintConfig) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		loader: taint.NewClassConfigLoader(domain),
		logger: logger.Named("lint"),
		cfg:    cfg,
	}
}

// Run lints every named file and aggregates the results into one report.
// I/O failures abort the run; invalid entries do not, unless strict mode is
// on, in which case the run stops after the first finding.
func (r *Runner) Run(paths []string) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Files:     paths,
	}

	for _, path := range paths {
		if err := r.lintFile(path, report); err != nil {
			return nil, err
		}
		if r.done(report) {
			break
		}
	}

	r.logger.Info("Lint run finished.",
		zap.String("run_id", report.RunID),
		zap.Int("checked", report.Checked),
		zap.Int("findings", len(report.Findings)))
	return report, nil
}

func (r *Runner) lintFile(path string, report *Report) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		report.Checked++
		if reason, ok := r.checkEntry(line); !ok {
			report.Findings = append(report.Findings, Finding{
				File:   path,
				Line:   lineNo,
				Entry:  line,
				Reason: reason,
			})
			if r.done(report) {
				return nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// checkEntry validates one non-comment line. The grammar check comes first;
// a load is attempted afterwards to catch state tokens that are well-formed
// but outside the domain.
func (r *Runner) checkEntry(line string) (reason string, ok bool) {
	descriptor, summary, err := taint.ParseEntry(line)
	if err != nil {
		return "descriptor has no summary field", false
	}
	summary = strings.TrimSpace(summary)
	if !taint.Accepts(descriptor, summary) {
		return "entry does not match the descriptor/summary grammar", false
	}
	if _, err := r.loader.Load(summary); err != nil {
		return err.Error(), false
	}
	return "", true
}

// done reports whether the run should stop collecting findings.
func (r *Runner) done(report *Report) bool {
	if report.Clean() {
		return false
	}
	if r.cfg.Strict {
		return true
	}
	if r.cfg.MaxFindings > 0 && len(report.Findings) >= r.cfg.MaxFindings {
		report.Truncated = true
		return true
	}
	return false
}
