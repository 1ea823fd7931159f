package modelfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
)

const pkgText = `package Method
model model_gas_boiler_20
  Real x;
equation
  x = 1;
end model_gas_boiler_20;
model model_gas_boiler_21
equation
end model_gas_boiler_21;
end Method;`

func model(name, body string) string {
	return "model " + name + "\n" + body + "\nend " + name + ";\n"
}

func TestSplice_Insert(t *testing.T) {
	out, mode, err := Splice(pkgText, model("model_heat_pump_20", "equation"), "model_heat_pump_20", "Method")
	require.NoError(t, err)

	assert.Equal(t, ModeInsert, mode)
	assert.True(t, strings.HasSuffix(out, "end model_heat_pump_20;\nend Method;"), out)
	assert.Contains(t, out, "end model_gas_boiler_21;\nmodel model_heat_pump_20\n")
	assert.True(t, strings.HasPrefix(out, "package Method\nmodel model_gas_boiler_20\n"))
}

func TestSplice_ReplaceInPlace(t *testing.T) {
	out, mode, err := Splice(pkgText, model("model_gas_boiler_20", "equation\n  y = 2;"), "model_gas_boiler_20", "Method")
	require.NoError(t, err)

	assert.Equal(t, ModeReplace, mode)
	assert.NotContains(t, out, "x = 1;")
	assert.Equal(t, 1, strings.Count(out, "model model_gas_boiler_20\n"))

	// position is kept: the replaced model still precedes its sibling
	assert.Less(t, strings.Index(out, "y = 2;"), strings.Index(out, "model model_gas_boiler_21"))
	assert.True(t, strings.HasSuffix(out, "end model_gas_boiler_21;\nend Method;"))
}

func TestSplice_PrefixNamesDoNotCollide(t *testing.T) {
	out, mode, err := Splice(pkgText, model("model_gas_boiler_2", "equation"), "model_gas_boiler_2", "Method")
	require.NoError(t, err)

	assert.Equal(t, ModeInsert, mode)
	assert.Contains(t, out, "x = 1;")
	assert.Contains(t, out, "model model_gas_boiler_21\n")
}

func TestSplice_Idempotent(t *testing.T) {
	m := model("model_sea_ring", "equation")
	once, _, err := Splice(pkgText, m, "model_sea_ring", "Method")
	require.NoError(t, err)
	twice, mode, err := Splice(once, m, "model_sea_ring", "Method")
	require.NoError(t, err)

	assert.Equal(t, ModeReplace, mode)
	assert.Equal(t, once, twice)
}

func TestSplice_Errors(t *testing.T) {
	_, _, err := Splice("package Other\nend Other;\n", model("m", ""), "m", "Method")
	assert.ErrorIs(t, err, ErrPackageEndNotFound)

	_, _, err = Splice("package Method\nmodel m\nequation\nend Method;\n", model("m", ""), "m", "Method")
	assert.ErrorIs(t, err, ErrUnterminatedModel)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "Method", PackageName("/tmp/models/Method.mo"))
	assert.Equal(t, "Method", PackageName("Method"))
}

func TestWriter_Patch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Method.mo")
	require.NoError(t, os.WriteFile(path, []byte(pkgText), 0o600))

	reg := metrics.NewRegistry()
	w := NewWriter(WithLogger(logging.NewNopLogger()), WithMetrics(reg))

	mode, err := w.Patch(path, "model_sea_ring", model("model_sea_ring", "equation"), false)
	require.NoError(t, err)
	assert.Equal(t, ModeInsert, mode)

	mode, err = w.Patch(path, "model_sea_ring", model("model_sea_ring", "equation\n  z = 3;"), false)
	require.NoError(t, err)
	assert.Equal(t, ModeReplace, mode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "model model_sea_ring\n"))
	assert.Contains(t, string(data), "z = 3;")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriter_PatchCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Campaign.mo")
	w := NewWriter(WithLogger(logging.NewNopLogger()))

	_, err := w.Patch(path, "m1", model("m1", "equation"), false)
	assert.Error(t, err)

	mode, err := w.Patch(path, "m1", model("m1", "equation"), true)
	require.NoError(t, err)
	assert.Equal(t, ModeInsert, mode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package Campaign\nmodel m1\nequation\nend m1;\nend Campaign;\n", string(data))
}

func TestWriter_PatchLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Campaign.mo")
	var buf bytes.Buffer
	w := NewWriter(WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)))

	_, err := w.Patch(path, "m1", model("m1", "equation"), true)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "model file patched", entry["msg"])
	assert.Equal(t, "modelfile", entry["component"])
	assert.Equal(t, string(ModeInsert), entry["mode"])
	assert.Equal(t, true, entry["create"])
}

func TestWriter_PatchMissingEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Method.mo")
	require.NoError(t, os.WriteFile(path, []byte("package Method\n"), 0o644))

	_, err := NewWriter(WithLogger(logging.NewNopLogger())).Patch(path, "m", model("m", ""), false)
	assert.ErrorIs(t, err, ErrPackageEndNotFound)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package Method\n", string(data), "file must be untouched on failure")
}
