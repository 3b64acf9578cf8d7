package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/siteconf/internal/config"
	"git.home.luguber.info/inful/siteconf/internal/export"
	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/observability"
	"git.home.luguber.info/inful/siteconf/internal/site"
	"git.home.luguber.info/inful/siteconf/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Export      string        `help:"Re-export to this file after every accepted change"`
	Format      string        `short:"f" help:"Export format; inferred from --export when omitted"`
	MetricsAddr string        `help:"Serve Prometheus metrics on this address (e.g. :9464)"`
	Debounce    time.Duration `help:"Quiet period before a change is reloaded" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	ctx = observability.WithCommand(ctx, "watch")
	ctx = observability.WithConfigPath(ctx, root.Config)
	ctx = observability.WithEnvironment(ctx, root.Env)

	r := &reloader{g: g, root: root, output: w.Export}
	if w.Export != "" {
		f, err := resolveFormat(w.Format, w.Export)
		if err != nil {
			return err
		}
		r.format = f
	}

	if w.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(reg)
		srv, ln, err := startMetricsServer(ctx, w.MetricsAddr, reg)
		if err != nil {
			return err
		}
		observability.InfoContext(ctx, "Serving metrics", logfields.Addr(ln.Addr().String()))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := r.reload(ctx); err != nil {
		observability.WarnContext(ctx, "Initial configuration rejected; waiting for changes", logfields.Error(err))
	}

	watcher, err := watch.New(root.Config, r.reload, watch.Options{
		Debounce:   w.Debounce,
		ExtraFiles: config.EnvFiles,
	})
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to create watcher").Build()
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to watch configuration").
			WithContext("path", root.Config).
			Build()
	}

	<-ctx.Done()
	_ = watcher.Stop()
	// Wait for a reload that was already running.
	r.mu.Lock()
	defer r.mu.Unlock()
	return nil
}

func startMetricsServer(ctx context.Context, addr string, reg *prometheus.Registry) (*http.Server, net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to listen for metrics").
			WithContext("addr", addr).
			Build()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.ErrorContext(ctx, "Metrics server stopped", logfields.Error(err))
		}
	}()
	return srv, ln, nil
}

// reloader holds the last accepted configuration. A rejected document never
// replaces it.
type reloader struct {
	g      *Global
	root   *CLI
	output string
	format export.Format

	mu      sync.Mutex
	last    string
	current atomic.Pointer[site.Config]
}

func (r *reloader) reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	env := r.root.Env
	res, outcome, err := resolve(ctx, r.g, r.root, env)
	printIssues(r.g.Stderr, r.root.Config, reportOf(res, err))
	if err != nil {
		r.g.Recorder.IncLoadOutcome(env, outcome)
		return err
	}
	ctx = observability.WithLoadID(ctx, res.LoadID)

	fp := res.Config.Fingerprint()
	if fp == r.last {
		r.g.Recorder.IncLoadOutcome(env, metrics.OutcomeUnchanged)
		observability.DebugContext(ctx, "Configuration unchanged", logfields.Fingerprint(fp))
		return nil
	}
	r.g.Recorder.IncLoadOutcome(env, outcome)
	r.last = fp
	r.current.Store(res.Config)
	observability.InfoContext(ctx, "Configuration accepted",
		logfields.Fingerprint(fp),
		logfields.Issues(len(res.Report.Issues)))

	if r.output == "" {
		return nil
	}
	changed, err := exportFile(r.g.Recorder, r.output, res.Config, r.format)
	if err != nil {
		return err
	}
	if changed {
		observability.InfoContext(ctx, "Exported configuration", logfields.Path(r.output), logfields.Format(string(r.format)))
	}
	return nil
}

// Current returns the last accepted configuration, or nil.
func (r *reloader) Current() *site.Config {
	return r.current.Load()
}
