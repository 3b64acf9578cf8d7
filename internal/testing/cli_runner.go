package testing

import (
	"bytes"
	"io"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// RunFunc is an in-process CLI entry point returning the exit code.
type RunFunc func(args []string, stdout, stderr io.Writer) int

// CLITestRunner runs siteconf commands in-process with captured output.
// WithWorkingDir and WithEnv change process state, so tests using them must
// not call t.Parallel.
type CLITestRunner struct {
	t   *testing.T
	run RunFunc
	dir string
	env map[string]string
}

func NewCLITestRunner(t *testing.T, run RunFunc) *CLITestRunner {
	return &CLITestRunner{t: t, run: run, env: map[string]string{}}
}

// WithWorkingDir makes relative paths in arguments resolve against dir.
func (r *CLITestRunner) WithWorkingDir(dir string) *CLITestRunner {
	r.dir = dir
	return r
}

// WithEnv sets key for every following Run. Values are restored when the test ends.
func (r *CLITestRunner) WithEnv(key, value string) *CLITestRunner {
	r.env[key] = value
	return r
}

// CLIResult captures one command invocation.
type CLIResult struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r *CLITestRunner) Run(args ...string) *CLIResult {
	r.t.Helper()

	if r.dir != "" {
		r.t.Chdir(r.dir)
	}
	for _, key := range slices.Sorted(maps.Keys(r.env)) {
		r.t.Setenv(key, r.env[key])
	}

	var out, errOut bytes.Buffer
	code := r.run(args, &out, &errOut)
	return &CLIResult{Args: args, ExitCode: code, Stdout: out.String(), Stderr: errOut.String()}
}

func (res *CLIResult) describe() string {
	return "args: " + strings.Join(res.Args, " ") + "\nstdout:\n" + res.Stdout + "\nstderr:\n" + res.Stderr
}

func (res *CLIResult) AssertExitCode(t *testing.T, want int) *CLIResult {
	t.Helper()
	assert.Equal(t, want, res.ExitCode, res.describe())
	return res
}

func (res *CLIResult) AssertSuccess(t *testing.T) *CLIResult {
	t.Helper()
	return res.AssertExitCode(t, 0)
}

// AssertOutputContains checks stdout.
func (res *CLIResult) AssertOutputContains(t *testing.T, want string) *CLIResult {
	t.Helper()
	assert.Contains(t, res.Stdout, want, res.describe())
	return res
}

// AssertErrorContains checks stderr.
func (res *CLIResult) AssertErrorContains(t *testing.T, want string) *CLIResult {
	t.Helper()
	assert.Contains(t, res.Stderr, want, res.describe())
	return res
}
