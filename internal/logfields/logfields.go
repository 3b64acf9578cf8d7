package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLoadID      = "load_id"
	KeyEnvironment = "environment"
	KeyPath        = "path"
	KeyFormat      = "format"
	KeyCommand     = "command"
	KeyCode        = "code"
	KeyLocation    = "location"
	KeyRoute       = "route"
	KeyFingerprint = "fingerprint"
	KeyIssues      = "issues"
	KeyDurationMS  = "duration_ms"
	KeyAddr        = "addr"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func LoadID(id string) slog.Attr      { return slog.String(KeyLoadID, id) }
func Environment(e string) slog.Attr  { return slog.String(KeyEnvironment, e) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Code(c string) slog.Attr         { return slog.String(KeyCode, c) }
func Location(l string) slog.Attr     { return slog.String(KeyLocation, l) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Fingerprint(f string) slog.Attr  { return slog.String(KeyFingerprint, f) }
func Issues(n int) slog.Attr          { return slog.Int(KeyIssues, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
