package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "siteconf"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration *prom.HistogramVec
	loadOutcome  *prom.CounterVec
	issues       *prom.CounterVec
	navItems     *prom.GaugeVec
	menuSections *prom.GaugeVec
	links        *prom.GaugeVec
	exports      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil
// registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of configuration loads including validation",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"environment"}),
		loadOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "load_outcomes_total",
			Help:      "Configuration loads by outcome",
		}, []string{"environment", "outcome"}),
		issues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Configuration issues found, by rule code and severity",
		}, []string{"code", "severity"}),
		navItems: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "nav_items",
			Help:      "Top navigation entries in the last loaded configuration",
		}, []string{"environment"}),
		menuSections: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "menu_sections",
			Help:      "Sidebar menu sections in the last loaded configuration",
		}, []string{"environment"}),
		links: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "links",
			Help:      "Links across navigation and menus in the last loaded configuration",
		}, []string{"environment"}),
		exports: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export writes by format and whether the output changed",
		}, []string{"format", "changed"}),
	}
	reg.MustRegister(pr.loadDuration, pr.loadOutcome, pr.issues, pr.navItems, pr.menuSections, pr.links, pr.exports)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(env string, d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.WithLabelValues(envLabel(env)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadOutcome(env string, outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.loadOutcome.WithLabelValues(envLabel(env), string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddIssues(code, severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.issues.WithLabelValues(code, severity).Add(float64(n))
}

func (p *PrometheusRecorder) SetNavigationSize(env string, navs, menuSections, links int) {
	if p == nil {
		return
	}
	env = envLabel(env)
	p.navItems.WithLabelValues(env).Set(float64(navs))
	p.menuSections.WithLabelValues(env).Set(float64(menuSections))
	p.links.WithLabelValues(env).Set(float64(links))
}

func (p *PrometheusRecorder) IncExport(format string, changed bool) {
	if p == nil {
		return
	}
	c := "false"
	if changed {
		c = "true"
	}
	p.exports.WithLabelValues(format, c).Inc()
}

func envLabel(env string) string {
	if env == "" {
		return "base"
	}
	return env
}
