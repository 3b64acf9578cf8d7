package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/siteconf/internal/docroot"
	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	CheckDocs bool   `help:"Check that internal routes resolve to documents under resolve.includes"`
	Root      string `help:"Project root for --check-docs (defaults to the configuration directory)"`
	Format    string `short:"f" help:"Report format" enum:"text,json" default:"text"`
}

type validationOutput struct {
	Config      string       `json:"config"`
	Environment string       `json:"environment"`
	Valid       bool         `json:"valid"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Issues      []site.Issue `json:"issues"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	ctx := commandContext("validate", root)
	res, outcome, err := resolve(ctx, g, root, root.Env)
	report := reportOf(res, err)
	if report == nil {
		g.Recorder.IncLoadOutcome(root.Env, outcome)
		return err
	}

	if err == nil && v.CheckDocs {
		docs, derr := docroot.Check(res.Config, v.projectRoot(root))
		if derr != nil {
			return derr
		}
		if root.Strict {
			docs.Escalate()
		}
		recordIssues(g.Recorder, docs)
		report.Merge(docs)
		switch {
		case report.HasErrors():
			outcome = metrics.OutcomeInvalid
		case len(report.Issues) > 0:
			outcome = metrics.OutcomeWarning
		}
	}
	g.Recorder.IncLoadOutcome(root.Env, outcome)

	out := validationOutput{
		Config:      root.Config,
		Environment: envName(root.Env),
		Valid:       !report.HasErrors(),
		Issues:      append([]site.Issue{}, report.Issues...),
	}
	if res != nil {
		out.Fingerprint = res.Config.Fingerprint()
	}
	if err := v.write(g, out, report); err != nil {
		return err
	}

	if report.HasErrors() {
		if err != nil {
			return err
		}
		return derrors.ValidationError(fmt.Sprintf("configuration has %d error(s)", len(report.Errors()))).
			WithContext("environment", root.Env).
			Build()
	}
	return nil
}

func (v *ValidateCmd) projectRoot(root *CLI) string {
	if v.Root != "" {
		return v.Root
	}
	return filepath.Dir(root.Config)
}

func (v *ValidateCmd) write(g *Global, out validationOutput, report *site.Report) error {
	if v.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode report").Build()
		}
		return nil
	}

	printIssues(g.Stdout, out.Config, report)
	status := "valid"
	if !out.Valid {
		status = "invalid"
	}
	var counts []string
	if n := len(report.Errors()); n > 0 {
		counts = append(counts, fmt.Sprintf("%d error(s)", n))
	}
	if n := len(report.Warnings()); n > 0 {
		counts = append(counts, fmt.Sprintf("%d warning(s)", n))
	}
	summary := fmt.Sprintf("%s (%s): %s", out.Config, out.Environment, status)
	if len(counts) > 0 {
		summary += ", " + strings.Join(counts, ", ")
	}
	_, _ = fmt.Fprintln(g.Stdout, summary)
	return nil
}
