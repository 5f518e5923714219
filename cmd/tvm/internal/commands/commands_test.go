package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(raw)), &v), "output: %s", raw)
	return v
}

func TestPV(t *testing.T) {
	code, out, _ := run(t, `{"task_id":"p1","amount":110,"rate":0.1,"periods":1}`, "pv")
	require.Equal(t, 0, code)

	got := decode[pvOutput](t, out)
	assert.Equal(t, "p1", got.TaskID)
	assert.InDelta(t, 100, got.PresentValue, 1e-9)
	assert.Empty(t, got.Error)
}

func TestPV_InvalidRate(t *testing.T) {
	code, out, _ := run(t, `{"amount":100,"rate":-1,"periods":1}`, "pv")
	require.Equal(t, 1, code)
	assert.Contains(t, decode[pvOutput](t, out).Error, "invalid rate")
}

func TestNPV(t *testing.T) {
	code, out, _ := run(t, `{"rate":0.1,"amounts":[-100,110]}`, "npv")
	require.Equal(t, 0, code)
	assert.InDelta(t, 0, decode[npvOutput](t, out).NPV, 1e-6)

	code, out, _ = run(t, `{"rate":0.1,"cash_flows":[{"period":0,"amount":-100},{"period":2,"amount":121}]}`, "npv")
	require.Equal(t, 0, code)
	assert.InDelta(t, 0, decode[npvOutput](t, out).NPV, 1e-6)
}

func TestNPV_Errors(t *testing.T) {
	code, out, _ := run(t, `{"rate":0.1}`, "npv")
	require.Equal(t, 1, code)
	assert.Contains(t, decode[npvOutput](t, out).Error, "empty cash flow series")

	code, out, _ = run(t, `{"rate":0.1,"amounts":[1],"cash_flows":[{"period":0,"amount":1}]}`, "npv")
	require.Equal(t, 1, code)
	assert.Contains(t, decode[npvOutput](t, out).Error, "either cash_flows or amounts")
}

func TestFV_YAML(t *testing.T) {
	code, out, _ := run(t, "present_value: 100\nrates: [0.05, 0.05]\n", "fv")
	require.Equal(t, 0, code)

	got := decode[fvOutput](t, out)
	assert.InDelta(t, 110.25, got.FutureValue, 1e-9)
	assert.Equal(t, 2, got.Periods)
}

func TestFV_EmptyRates(t *testing.T) {
	code, out, _ := run(t, `{"present_value":100,"rates":[]}`, "fv")
	require.Equal(t, 1, code)
	assert.Contains(t, decode[fvOutput](t, out).Error, "empty rate sequence")
}

func TestIRR_Batch(t *testing.T) {
	in := `[{"task_id":"a","amounts":[-100,110]},{"task_id":"b","amounts":[100,100]}]`
	code, out, _ := run(t, in, "irr")
	require.Equal(t, 1, code)

	got := decode[[]irrOutput](t, out)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].TaskID)
	assert.InDelta(t, 0.10, got[0].IRR, 1e-6)
	assert.Empty(t, got[0].Error)
	require.NotNil(t, got[0].Bracket)
	assert.True(t, got[0].Bracket.Contains(got[0].IRR))

	assert.Equal(t, "b", got[1].TaskID)
	assert.Contains(t, got[1].Error, "no root bracketed")
}

func TestIRR_DidNotConverge(t *testing.T) {
	code, out, _ := run(t, `{"amounts":[-100,110],"max_iterations":1}`, "irr")
	require.Equal(t, 1, code)

	got := decode[irrOutput](t, out)
	assert.Contains(t, got.Error, "did not converge")
	require.NotNil(t, got.Estimate)
	assert.InDelta(t, 4.5000005, *got.Estimate, 1e-12)
	assert.Equal(t, 1, got.Iterations)
}

func TestIRR_RequestOverrides(t *testing.T) {
	code, out, _ := run(t, `{"amounts":[-100,60,60],"tolerance":1e-10,"bracket":{"low":0,"high":1}}`, "irr")
	require.Equal(t, 0, code)

	got := decode[irrOutput](t, out)
	assert.InDelta(t, 0.130662, got.IRR, 1e-6)
	require.NotNil(t, got.Bracket)
	assert.GreaterOrEqual(t, got.Bracket.Low, 0.0)
	assert.LessOrEqual(t, got.Bracket.High, 1.0)
}

func TestIRR_Guess(t *testing.T) {
	code, out, _ := run(t, `{"cash_flows":[{"period":0,"amount":-100},{"period":3,"amount":133.1}],"guess":0.5}`, "irr")
	require.Equal(t, 0, code)
	assert.InDelta(t, 0.10, decode[irrOutput](t, out).IRR, 1e-6)
}

func TestIRR_ConfigFileAndInputFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tvm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("solver:\n  bracket_low: 0.2\n  bracket_high: 0.5\n"), 0o644))
	inPath := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(inPath, []byte("amounts: [-100, 110]\n"), 0o644))

	// The configured bracket does not hold the 10% root.
	code, out, _ := run(t, "", "irr", "--config", cfgPath, "--input", inPath)
	require.Equal(t, 1, code)
	assert.Contains(t, decode[irrOutput](t, out).Error, "no root bracketed")
}

func TestIRR_DebugLogsToStderr(t *testing.T) {
	code, out, stderr := run(t, `{"amounts":[-100,110]}`, "irr", "--log-level", "debug")
	require.Equal(t, 0, code)
	assert.InDelta(t, 0.10, decode[irrOutput](t, out).IRR, 1e-6)
	assert.Contains(t, stderr, "bisection converged")
	assert.NotContains(t, out, "bisection")
}

func TestBadInput(t *testing.T) {
	code, out, _ := run(t, "", "irr")
	require.Equal(t, 1, code)
	assert.Contains(t, out, "empty input")

	code, out, _ = run(t, "{oops", "pv")
	require.Equal(t, 1, code)
	assert.Contains(t, out, "parse input")
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := run(t, "", "discount")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, _ = run(t, "", "irr", "extra-arg")
	assert.Equal(t, 2, code)

	code, _, _ = run(t, "", "irr", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 2, code)
}
