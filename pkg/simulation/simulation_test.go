package simulation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/heatnet/pkg/compiler"
	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
)

func sampleGraph(t *testing.T, kind templates.SourceKind, pipes int) *topology.Graph {
	t.Helper()
	g, err := config.SampleDistrict(kind, pipes).Graph()
	require.NoError(t, err)
	return g
}

func valuesByName(in []Initial) map[string]float64 {
	out := make(map[string]float64, len(in))
	for _, i := range in {
		out[i.Name] = i.Value
	}
	return out
}

func TestDefaultRun(t *testing.T) {
	run := DefaultRun()
	assert.Equal(t, RunSpec{Start: 0, Stop: 6000, Intervals: 100}, run)
	assert.NoError(t, run.Validate())
}

func TestRunSpec_Validate(t *testing.T) {
	tests := []struct {
		name string
		run  RunSpec
	}{
		{"negative start", RunSpec{Start: -1, Stop: 10, Intervals: 1}},
		{"inverted window", RunSpec{Start: 10, Stop: 5, Intervals: 1}},
		{"no intervals", RunSpec{Start: 0, Stop: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.run.Validate())
		})
	}
}

func TestRequest_Validate(t *testing.T) {
	req := Request{
		Model:   "Method.model_sea_ring",
		Initial: []Initial{{"prod_supply_sea.p", 5e5}, {"sink_supply_sea.p", 1e5}},
		Run:     DefaultRun(),
	}
	assert.NoError(t, req.Validate())

	req.Initial = append(req.Initial, Initial{"prod_supply_sea.p", 4e5})
	assert.ErrorIs(t, req.Validate(), ErrDuplicateInitial)

	assert.Error(t, Request{Run: DefaultRun()}.Validate())
}

func TestInitialValues_Ring(t *testing.T) {
	in := InitialValues(templates.Sea, 1, sampleGraph(t, templates.Sea, 1))
	require.Len(t, in, 4*4+2+3)

	v := valuesByName(in)
	assert.Equal(t, 1.0, v["source_SST_Building_1.m_flow"])
	assert.InDelta(t, 313.15, v["source_SST_Building_1.T"], 1e-9)
	assert.InDelta(t, 318.15, v["constant_SST_Building_1.k"], 1e-9)
	assert.InDelta(t, 285.15, v["source_SST_Building_2.T"], 1e-9)
	assert.InDelta(t, 333.15, v["constant_SST_Building_2.k"], 1e-9)
	assert.InDelta(t, 285.15, v["source_W_SST_Building_3.T"], 1e-9)
	assert.InDelta(t, 318.15, v["constant_H_SST_Building_3.k"], 1e-9)
	assert.Equal(t, 2e5, v["sink_H_SST_Building_3.p"])
	assert.Equal(t, 5e5, v["prod_supply_sea.p"])
	assert.Equal(t, 1e5, v["sink_supply_sea.p"])
	assert.Equal(t, 5.0, v["source_sea_supply_sea.m_flow"])
	assert.Equal(t, 2e5, v["sink_sea_supply_sea.p"])

	// hot water station of a dual consumer comes first
	assert.Less(t, indexOf(in, "source_W_SST_Building_3.m_flow"), indexOf(in, "source_H_SST_Building_3.m_flow"))
}

func TestInitialValues_Production(t *testing.T) {
	tests := []struct {
		kind  templates.SourceKind
		pipes int
		want  map[string]float64
	}{
		{templates.GasBoiler, 2, map[string]float64{
			"constant_supply_gas_boiler.k": 338.15,
		}},
		{templates.GasBoiler, 3, map[string]float64{
			"constant_supply_gas_boiler.k":  338.15,
			"constant_Lsupply_gas_boiler.k": 323.15,
		}},
		{templates.HeatPump, 3, map[string]float64{
			"constant_supply_heat_pump.k":        338.15,
			"constantL_supply_heat_pump.k":       323.15,
			"source_seaL_supply_heat_pump.T":     288.15,
			"sink_seaL_supply_heat_pump.p":       1e5,
			"source_sea_supply_heat_pump.m_flow": 5,
		}},
		{templates.GasBoilerGeo, 2, map[string]float64{
			"constant_supply_gas_boiler_geo.k":        338.15,
			"source_geo_supply_gas_boiler_geo.T":      333.15,
			"source_geo_supply_gas_boiler_geo.m_flow": 5,
			"sink_geo_supply_gas_boiler_geo.p":        2e5,
		}},
		{templates.HeatPumpGasBoiler, 3, map[string]float64{
			"const_supply_heat_pump_gas_boiler.k":     323.15,
			"constant_supply_heat_pump_gas_boiler.k":  338.15,
			"constL_supply_heat_pump_gas_boiler.k":    323.15,
			"constant_Lsupply_heat_pump_gas_boiler.k": 323.15,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v := valuesByName(InitialValues(tt.kind, tt.pipes, sampleGraph(t, tt.kind, tt.pipes)))
			for name, want := range tt.want {
				got, ok := v[name]
				if assert.True(t, ok, "missing %s", name) {
					assert.InDelta(t, want, got, 1e-9, name)
				}
			}
		})
	}
}

func TestInitialValues_SimpleSource(t *testing.T) {
	in := InitialValues(templates.SimpleSource, 2, sampleGraph(t, templates.SimpleSource, 2))
	assert.Len(t, in, 4*4+2)
}

// Every initialized or observed reference must name an instance the
// compiler declares for the same build.
func TestReferencesMatchCompiledModel(t *testing.T) {
	for _, kind := range templates.SourceKinds() {
		for _, pipes := range []int{1, 2, 3} {
			g := sampleGraph(t, kind, pipes)
			c, err := compiler.New(compiler.BuildConfig{ModelName: "m", Source: kind, Pipes: pipes},
				compiler.WithLogger(logging.NewNopLogger()))
			require.NoError(t, err)

			refs := Observables(kind, pipes, g)
			for _, i := range InitialValues(kind, pipes, g) {
				refs = append(refs, i.Name)
			}

			m, err := c.Compile(g)
			require.NoError(t, err)
			text := m.String()

			for _, ref := range refs {
				instance, _, _ := strings.Cut(ref, ".")
				declared := strings.Contains(text, " "+instance+"(") || strings.Contains(text, " "+instance+" annotation")
				assert.True(t, declared, "%s/%d: %s not declared", kind, pipes, instance)
			}
		}
	}
}

func TestObservables(t *testing.T) {
	g := sampleGraph(t, templates.HeatPumpGasBoiler, 3)
	assert.Equal(t, []string{
		"boiler_supply_heat_pump_gas_boiler.QFue_flow",
		"HP_supply_heat_pump_gas_boiler.P",
		"boilerL_supply_heat_pump_gas_boiler.QFue_flow",
		"HPL_supply_heat_pump_gas_boiler.P",
	}, Observables(templates.HeatPumpGasBoiler, 3, g))

	assert.Empty(t, Observables(templates.Sea, 2, sampleGraph(t, templates.Sea, 2)))
}

func TestResult_SteadyState(t *testing.T) {
	r := &Result{
		Time: []float64{0, 3000, 5400, 6000},
		Series: map[string][]float64{
			"HP_supply_heat_pump.P": {100, 50, 10, 20},
			"pipe_SB1.m_flow":       {1, 1, 1, 1},
		},
	}

	p, err := r.SteadyState("HP_supply_heat_pump.P", SteadyStateFrom)
	require.NoError(t, err)
	assert.Equal(t, 15.0, p)

	_, err = r.SteadyState("boiler.QFue_flow", SteadyStateFrom)
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, err = r.SteadyState("pipe_SB1.m_flow", 7000)
	assert.Error(t, err)

	assert.Equal(t, []string{"HP_supply_heat_pump.P", "pipe_SB1.m_flow"}, r.Names())
}

type stubDriver struct {
	got Request
}

func (d *stubDriver) Simulate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.got = req
	return &Result{Time: []float64{0}, Series: map[string][]float64{}}, nil
}

func TestDriverContract(t *testing.T) {
	var d Driver = &stubDriver{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Simulate(ctx, Request{Model: "Method.m", Run: DefaultRun()})
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = d.Simulate(context.Background(), Request{Model: "Method.m", Run: DefaultRun()})
	require.NoError(t, err)
	assert.Equal(t, "Method.m", d.(*stubDriver).got.Model)
}

func indexOf(in []Initial, name string) int {
	for i, v := range in {
		if v.Name == name {
			return i
		}
	}
	return -1
}

func TestNewRequest(t *testing.T) {
	g := sampleGraph(t, templates.GasBoiler, 3)
	req := NewRequest("Method.model_gas_boiler_30", templates.GasBoiler, 3, g)

	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultRun(), req.Run)
	assert.Equal(t, []string{
		"boiler_supply_gas_boiler.QFue_flow",
		"boilerL_supply_gas_boiler.QFue_flow",
	}, req.Observe)
	assert.Len(t, req.Initial, 16+2+2)
}
