package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"LoadID", KeyLoadID, "abc", LoadID("abc")},
		{"Environment", KeyEnvironment, "production", Environment("production")},
		{"Path", KeyPath, "/tmp/siteconf.yaml", Path("/tmp/siteconf.yaml")},
		{"Format", KeyFormat, "ts", Format("ts")},
		{"Command", KeyCommand, "validate", Command("validate")},
		{"Code", KeyCode, "dangling-menu", Code("dangling-menu")},
		{"Location", KeyLocation, "navs[0]", Location("navs[0]")},
		{"Route", KeyRoute, "/home", Route("/home")},
		{"Fingerprint", KeyFingerprint, "f00", Fingerprint("f00")},
		{"Addr", KeyAddr, ":9090", Addr(":9090")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Issues(3); a.Key != KeyIssues || a.Value.Int64() != 3 {
		t.Fatalf("unexpected issues attr: %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected duration attr: %v", a)
	}
}
