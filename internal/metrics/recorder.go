package metrics

import "time"

// OutcomeLabel enumerates configuration load outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess   OutcomeLabel = "success"
	OutcomeWarning   OutcomeLabel = "warning"
	OutcomeInvalid   OutcomeLabel = "invalid"
	OutcomeFailed    OutcomeLabel = "failed"
	OutcomeUnchanged OutcomeLabel = "unchanged"
)

// Recorder defines observability hooks for configuration loads and exports.
// Implementations may forward to Prometheus or similar. NoopRecorder is the
// default when metrics are not configured.
type Recorder interface {
	ObserveLoadDuration(env string, d time.Duration)
	IncLoadOutcome(env string, outcome OutcomeLabel)
	AddIssues(code, severity string, n int)
	SetNavigationSize(env string, navs, menuSections, links int)
	IncExport(format string, changed bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(string, time.Duration) {}
func (NoopRecorder) IncLoadOutcome(string, OutcomeLabel)       {}
func (NoopRecorder) AddIssues(string, string, int)             {}
func (NoopRecorder) SetNavigationSize(string, int, int, int)   {}
func (NoopRecorder) IncExport(string, bool)                    {}
