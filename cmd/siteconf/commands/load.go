package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/siteconf/internal/config"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/observability"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// resolve loads one environment and records duration, issues and navigation
// size. The outcome is returned for the caller to record.
func resolve(ctx context.Context, g *Global, root *CLI, env string) (*config.Result, metrics.OutcomeLabel, error) {
	start := time.Now()
	res, err := config.Load(root.Config, root.loadOptions(env))
	elapsed := time.Since(start)
	g.Recorder.ObserveLoadDuration(env, elapsed)

	report := reportOf(res, err)
	recordIssues(g.Recorder, report)
	if report != nil {
		for _, issue := range report.Issues {
			observability.DebugContext(ctx, issue.Message,
				logfields.Code(string(issue.Code)), logfields.Location(issue.Location))
		}
	}

	if err != nil {
		observability.DebugContext(ctx, "Configuration load failed", logfields.Error(err))
		if report != nil {
			return nil, metrics.OutcomeInvalid, err
		}
		return nil, metrics.OutcomeFailed, err
	}

	ctx = observability.WithLoadID(ctx, res.LoadID)
	if res.EnvFile != "" {
		observability.DebugContext(ctx, "Loaded environment file", logfields.Path(res.EnvFile))
	}
	g.Recorder.SetNavigationSize(env, len(res.Config.Navs), len(res.Config.Menus), len(res.Config.Links()))
	observability.DebugContext(ctx, "Configuration loaded",
		logfields.Fingerprint(res.Config.Fingerprint()),
		logfields.Issues(len(res.Report.Issues)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	if len(res.Report.Issues) > 0 {
		return res, metrics.OutcomeWarning, nil
	}
	return res, metrics.OutcomeSuccess, nil
}

// loadEnv resolves env, records the outcome and prints any issues to stderr.
func loadEnv(ctx context.Context, g *Global, root *CLI, env string) (*config.Result, error) {
	res, outcome, err := resolve(ctx, g, root, env)
	g.Recorder.IncLoadOutcome(env, outcome)
	printIssues(g.Stderr, root.Config, reportOf(res, err))
	return res, err
}

func recordIssues(r metrics.Recorder, report *site.Report) {
	if report == nil {
		return
	}
	type key struct {
		code     site.Code
		severity site.Severity
	}
	counts := make(map[key]int)
	for _, issue := range report.Issues {
		counts[key{issue.Code, issue.Severity}]++
	}
	for k, n := range counts {
		r.AddIssues(string(k.code), string(k.severity), n)
	}
}
