package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/heatnet/pkg/simulation"
	"github.com/dd0wney/heatnet/pkg/tree"
)

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Commands(t *testing.T) {
	_, stderr, err := runArgs(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "Available Commands")

	stdout, _, err := runArgs(t, "help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "heatnet <command>")

	stdout, _, err = runArgs(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "heatnet v"+version+"\n", stdout)

	_, stderr, err = runArgs(t, "simulate")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "Unknown command: simulate")
}

func TestCompile_Sample(t *testing.T) {
	stdout, stderr, err := runArgs(t, "compile", "-source", "gas_boiler", "-pipes", "3", "-log-level", "error")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "model model_gas_boiler\n"))
	assert.True(t, strings.HasSuffix(stdout, "end model_gas_boiler;\n"))
	assert.Contains(t, stdout, "boilerL_supply_gas_boiler")
	assert.Contains(t, stderr, "Instances")
	assert.Contains(t, stderr, "stdout")
}

func TestCompile_DebugLog(t *testing.T) {
	_, stderr, err := runArgs(t, "compile", "-source", "gas_boiler", "-pipes", "2", "-log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"longest supply run"`)
	assert.Contains(t, stderr, `"distance":`)
	assert.Contains(t, stderr, `"component":"compiler"`)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown source", []string{"-source", "coal"}},
		{"pipe count", []string{"-pipes", "4"}},
		{"bad sequence", []string{"-sequence", "0,x"}},
		{"sequence out of range", []string{"-sequence", "0,7"}},
		{"exclusive outputs", []string{"-out", "a.mo", "-package", "b.mo"}},
		{"missing network", []string{"-network", "does-not-exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runArgs(t, append([]string{"compile", "-log-level", "error"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestCompile_NetworkFile(t *testing.T) {
	dir := t.TempDir()
	network := filepath.Join(dir, "district.yaml")
	out := filepath.Join(dir, "district.mo")

	_, _, err := runArgs(t, "sample", "-source", "heat_pump", "-pipes", "2", "-out", network)
	require.NoError(t, err)

	_, stderr, err := runArgs(t, "compile", "-network", network, "-out", out, "-model", "district", "-log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stderr, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "model district\n")
	assert.Contains(t, string(data), "HP_supply_heat_pump")
}

func TestCompile_Package(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "Method.mo")

	_, _, err := runArgs(t, "compile", "-package", pkg, "-log-level", "error")
	assert.Error(t, err, "package must exist without -create")

	_, stderr, err := runArgs(t, "compile", "-package", pkg, "-create", "-sequence", "1,2", "-model", "m1", "-log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stderr, "insert")

	_, stderr, err = runArgs(t, "compile", "-package", pkg, "-sequence", "0,0", "-model", "m1", "-log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stderr, "replace")

	data, err := os.ReadFile(pkg)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "package Method\n"))
	assert.True(t, strings.HasSuffix(text, "end Method;\n"))
	assert.Equal(t, 1, strings.Count(text, "model m1\n"))
}

func TestTree(t *testing.T) {
	stdout, _, err := runArgs(t, "tree", "-sequence", "0,0", "-log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "# sequence [0,0]\n0 1\n0 2\n0 3\n", stdout)

	_, _, err = runArgs(t, "tree", "-sequence", "9,9", "-log-level", "error")
	assert.ErrorIs(t, err, tree.ErrVertexIndexOutOfRange)

	_, _, err = runArgs(t, "tree", "-log-level", "error")
	assert.Error(t, err)

	stdout, _, err = runArgs(t, "tree", "-random", "-n", "6", "-seed", "7", "-log-level", "error")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 1+5)
}

func TestTree_EncodeNetwork(t *testing.T) {
	network := filepath.Join(t.TempDir(), "district.yaml")
	_, _, err := runArgs(t, "sample", "-out", network)
	require.NoError(t, err)

	stdout, _, err := runArgs(t, "tree", "-network", network)
	require.NoError(t, err)
	assert.Equal(t, "[0,0]\n", stdout)
}

func TestSequences(t *testing.T) {
	stdout, _, err := runArgs(t, "sequences", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "[0]\n[1]\n[2]\n", stdout)

	stdout, _, err = runArgs(t, "sequences", "-n", "4", "-count")
	require.NoError(t, err)
	assert.Equal(t, "16\n", stdout)

	stdout, _, err = runArgs(t, "sequences", "-n", "5", "-limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "[0,0,0]\n[0,0,1]\n", stdout)

	_, _, err = runArgs(t, "sequences", "-n", "1")
	assert.Error(t, err)

	stdout, _, err = runArgs(t, "sequences", "-n", "18", "-count")
	assert.ErrorIs(t, err, tree.ErrTooManySequences)
	assert.Empty(t, stdout)
}

func TestCampaign(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "Method.mo")
	plan := filepath.Join(dir, "plan.yaml")
	prom := filepath.Join(dir, "heatnet.prom")

	stdout, _, err := runArgs(t, "campaign",
		"-package", pkg, "-plan", plan, "-metrics-out", prom,
		"-sources", "gas_boiler", "-pipes", "2", "-log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "17 models")

	data, err := os.ReadFile(pkg)
	require.NoError(t, err)
	text := string(data)
	for _, name := range []string{"model_gas_boiler_20", "model_gas_boiler_215", "model_sea_ring"} {
		assert.Contains(t, text, "model "+name+"\n")
	}
	assert.NotContains(t, text, "model_gas_boiler_216")

	raw, err := os.ReadFile(plan)
	require.NoError(t, err)
	var requests []simulation.Request
	require.NoError(t, yaml.Unmarshal(raw, &requests))
	require.Len(t, requests, 17)
	assert.Equal(t, "Method.model_gas_boiler_20", requests[0].Model)
	assert.Equal(t, simulation.DefaultRun(), requests[0].Run)
	assert.Equal(t, []string{"boiler_supply_gas_boiler.QFue_flow"}, requests[0].Observe)
	assert.Equal(t, "Method.model_sea_ring", requests[16].Model)
	for _, req := range requests {
		assert.NoError(t, req.Validate())
	}

	metricsText, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), "heatnet_campaign_models 17")
	assert.Contains(t, string(metricsText), "heatnet_sequences_enumerated_total 16")

	// a second run replaces every model in place
	_, _, err = runArgs(t, "campaign", "-package", pkg, "-sources", "gas_boiler", "-pipes", "2", "-log-level", "error")
	require.NoError(t, err)
	again, err := os.ReadFile(pkg)
	require.NoError(t, err)
	assert.Equal(t, strings.Count(text, "\nmodel "), strings.Count(string(again), "\nmodel "))
}

func TestCampaign_Errors(t *testing.T) {
	_, _, err := runArgs(t, "campaign")
	assert.Error(t, err)

	pkg := filepath.Join(t.TempDir(), "Method.mo")
	_, _, err = runArgs(t, "campaign", "-package", pkg, "-pipes", "1")
	assert.Error(t, err)

	_, _, err = runArgs(t, "campaign", "-package", pkg, "-sources", "coal")
	assert.Error(t, err)
}

func TestParseSequence(t *testing.T) {
	seq, err := parseSequence("0, 2 ,1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, seq)

	seq, err = parseSequence("")
	require.NoError(t, err)
	assert.Empty(t, seq)
}
