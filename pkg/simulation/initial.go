package simulation

import (
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// Boundary conditions of the reference campaign. Temperatures are in °C,
// pressures in Pa and flows in kg/s.
const (
	SubstationFlow     = 1.0
	SubstationPressure = 2e5
	HeatingReturnTemp  = 40.0
	DHWInletTemp       = 12.0
	ProductionPressure = 5e5
	ReturnPressure     = 1e5
	SeaTemp            = 15.0
	SeaFlow            = 5.0
	SeaOutletPressure  = 1e5
	RingOutletPressure = 2e5
	GeothermalTemp     = 60.0
	GeothermalFlow     = 5.0
	GeothermalPressure = 2e5

	// SteadyStateFrom starts the averaging window of campaign figures, in s
	SteadyStateFrom = 5400.0
)

func kelvin(celsius float64) float64 {
	return templates.Kelvin + celsius
}

type initials []Initial

func (in *initials) add(name string, value float64) {
	*in = append(*in, Initial{Name: name, Value: value})
}

// InitialValues returns the initialization pairs for a model compiled from g
// with the given source kind and pipe count: each consumer station's
// secondary loop and setpoint, the production boundary pressures, and the
// setpoints and loops of every production branch.
func InitialValues(kind templates.SourceKind, pipes int, g *topology.Graph) []Initial {
	var in initials

	for _, n := range g.Nodes() {
		if n.SupplyHeating {
			continue
		}
		if n.THeating != 0 && n.TDHW != 0 {
			substation(&in, "W_SST_"+n.ID, DHWInletTemp, n.TDHW)
			substation(&in, "H_SST_"+n.ID, HeatingReturnTemp, n.THeating)
			continue
		}
		inlet := DHWInletTemp
		if n.THeating != 0 {
			inlet = HeatingReturnTemp
		}
		substation(&in, "SST_"+n.ID, inlet, max(n.THeating, n.TDHW))
	}

	for _, n := range g.Nodes() {
		if !n.SupplyHeating {
			continue
		}
		name := "supply_" + n.ID
		in.add("prod_"+name+".p", ProductionPressure)
		in.add("sink_"+name+".p", ReturnPressure)
		for _, br := range branches(pipes) {
			production(&in, kind, pipes, br, name)
		}
	}

	return in
}

func substation(in *initials, name string, inlet, setpoint float64) {
	in.add("source_"+name+".m_flow", SubstationFlow)
	in.add("source_"+name+".T", kelvin(inlet))
	in.add("sink_"+name+".p", SubstationPressure)
	in.add("constant_"+name+".k", kelvin(setpoint))
}

func branches(pipes int) []string {
	if pipes == 3 {
		return []string{"", "L"}
	}
	return []string{""}
}

func supplyTemp(br string) float64 {
	if br == "L" {
		return templates.LowSupplyTemperature
	}
	return templates.SupplyTemperature
}

// production adds the parameters of one production branch. Boiler
// controllers are named after the branch and source ("constant_Lsupply_X"),
// heat pump setpoints after the instance ("constantL_supply_X").
func production(in *initials, kind templates.SourceKind, pipes int, br, name string) {
	sea := func() {
		in.add("source_sea"+br+"_"+name+".T", kelvin(SeaTemp))
		in.add("source_sea"+br+"_"+name+".m_flow", SeaFlow)
		in.add("sink_sea"+br+"_"+name+".p", SeaOutletPressure)
	}
	geo := func() {
		in.add("source_geo"+br+"_"+name+".T", kelvin(GeothermalTemp))
		in.add("source_geo"+br+"_"+name+".m_flow", GeothermalFlow)
		in.add("sink_geo"+br+"_"+name+".p", GeothermalPressure)
	}

	switch kind {
	case templates.GasBoiler:
		in.add("constant_"+br+name+".k", kelvin(supplyTemp(br)))
	case templates.GasBoilerGeo:
		in.add("constant_"+br+name+".k", kelvin(supplyTemp(br)))
		geo()
	case templates.HeatPump:
		in.add("constant"+br+"_"+name+".k", kelvin(supplyTemp(br)))
		sea()
	case templates.GeoHeatPump:
		in.add("constant"+br+"_"+name+".k", kelvin(supplyTemp(br)))
		sea()
		geo()
	case templates.HeatPumpGasBoiler:
		in.add("const"+br+"_"+name+".k", kelvin(templates.PreheatTemperature))
		in.add("constant_"+br+name+".k", kelvin(supplyTemp(br)))
		sea()
	case templates.Sea:
		in.add("source_sea"+br+"_"+name+".m_flow", SeaFlow)
		in.add("source_sea"+br+"_"+name+".T", kelvin(SeaTemp))
		outlet := SeaOutletPressure
		if pipes == 1 {
			outlet = RingOutletPressure
		}
		in.add("sink_sea"+br+"_"+name+".p", outlet)
	case templates.SimpleSource:
		// idealized boundaries need no parameters
	}
}

// Observables returns the result references a campaign reads for the
// production of g: boiler fuel flow and heat pump power per branch.
func Observables(kind templates.SourceKind, pipes int, g *topology.Graph) []string {
	var refs []string
	for _, n := range g.Nodes() {
		if !n.SupplyHeating {
			continue
		}
		name := "supply_" + n.ID
		for _, br := range branches(pipes) {
			if kind.HasBoiler() {
				refs = append(refs, "boiler"+br+"_"+name+".QFue_flow")
			}
			if kind.HasHeatPump() {
				refs = append(refs, "HP"+br+"_"+name+".P")
			}
		}
	}
	return refs
}

// NewRequest prepares the default run of the model compiled from g, with
// its initial values and observables
func NewRequest(model string, kind templates.SourceKind, pipes int, g *topology.Graph) Request {
	return Request{
		Model:   model,
		Initial: InitialValues(kind, pipes, g),
		Run:     DefaultRun(),
		Observe: Observables(kind, pipes, g),
	}
}
