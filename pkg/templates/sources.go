package templates

import (
	"fmt"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// Source dispatches to the builder of kind. degree is the number of edges
// incident on the source node; only the simple source sizes its ports by it.
func (l *Library) Source(kind SourceKind, name string, pos topology.Position, degree int) (Fragment, error) {
	switch kind {
	case SimpleSource:
		return l.SimpleSource(name, pos, degree)
	case GasBoiler:
		return l.GasBoiler(name, pos)
	case GasBoilerGeo:
		return l.GasBoilerGeo(name, pos)
	case HeatPump:
		return l.HeatPump(name, pos)
	case GeoHeatPump:
		return l.GeoHeatPump(name, pos)
	case HeatPumpGasBoiler:
		return l.HeatPumpGasBoiler(name, pos)
	case Sea:
		return l.Sea(name, pos)
	default:
		return Fragment{}, fmt.Errorf("%w: %s", ErrUnknownSourceKind, kind)
	}
}

// supplyDir returns the supply direction served by a production branch
func supplyDir(branch string) topology.Direction {
	if branch == "L" {
		return topology.DirAL
	}
	return topology.DirA
}

// supplyTemperature returns the setpoint of a production branch
func supplyTemperature(branch string) float64 {
	if branch == "L" {
		return LowSupplyTemperature
	}
	return SupplyTemperature
}

// circulation declares the production boundary, the return sink and the
// return temperature sensor that feeds the production temperature. It
// returns the production boundary name.
func (l *Library) circulation(a *assembler, name string, pos topology.Position, prodPorts, sinkPorts int) string {
	prod := a.instance("prod_"+name, catalog.BoundaryPT, at(pos, 0, 20), script.PortCount(prodPorts))
	sink := a.instance("sink_"+name, catalog.BoundaryPT, at(pos, 0, -20), script.PortCount(sinkPorts))
	term := a.instance("temp_return_"+name, catalog.TemperatureSensor, at(pos, -20, -20), nil)

	a.connect(indexed(sink+".ports", 1), term+".port")
	a.connect(prod+".T_in", term+".T")

	a.bind(topology.DirB, term+".port", 0)
	return prod
}

// productionPorts is the number of production boundary ports, one per branch
func (l *Library) productionPorts() int {
	return max(1, l.config.Pipes-1)
}

// SimpleSource builds an idealized source whose production boundaries expose
// one port per incident edge.
func (l *Library) SimpleSource(name string, pos topology.Position, degree int) (Fragment, error) {
	ports := max(1, degree)

	a := l.assemble(name)
	prod := l.circulation(a, name, pos, ports, ports)
	a.bind(topology.DirA, prod+".ports", ports)

	if l.config.Pipes == 3 {
		prodL := a.instance("prodL_"+name, catalog.BoundaryPT, at(pos, 20, 20), script.PortCount(ports))
		a.bind(topology.DirAL, prodL+".ports", ports)
	}
	return a.result()
}

// GasBoiler builds a boiler per production branch, each regulated on its
// outlet temperature.
func (l *Library) GasBoiler(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		boiler := a.instance("boiler"+br+"_"+name, catalog.Boiler, at(pos, 20+off, 0), nil)
		ctrl, err := l.Controller(br+name, boiler+".sta_b.T", at(pos, off, 0), supplyTemperature(br))
		a.include(ctrl, err)

		a.connect(indexed(prod+".ports", i+1), boiler+".port_a")
		a.connect(ctrl.Name+".y", boiler+".y")
		a.bind(supplyDir(br), boiler+".port_b", 0)
	}
	return a.result()
}

// GasBoilerGeo builds, per production branch, a geothermal exchanger
// preheating the water ahead of a regulated boiler.
func (l *Library) GasBoilerGeo(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		boiler := a.instance("boiler"+br+"_"+name, catalog.Boiler, at(pos, 20+off, 0), nil)
		ctrl, err := l.Controller(br+name, boiler+".sta_b.T", at(pos, off, 0), supplyTemperature(br))
		a.include(ctrl, err)
		hex := l.geothermal(a, br, name, at(pos, 20+off, 20))

		a.connect(indexed(prod+".ports", i+1), hex+".port_a1")
		a.connect(hex+".port_b1", boiler+".port_a")
		a.connect(ctrl.Name+".y", boiler+".y")
		a.bind(supplyDir(br), boiler+".port_b", 0)
	}
	return a.result()
}

// HeatPump builds a sea-water heat pump per production branch
func (l *Library) HeatPump(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		hp := l.seaHeatPump(a, br, "constant", name, at(pos, 20+off, 0), supplyTemperature(br))

		a.connect(indexed(prod+".ports", i+1), hp+".port_a1")
		a.bind(supplyDir(br), hp+".port_b1", 0)
	}
	return a.result()
}

// GeoHeatPump builds, per production branch, a geothermal exchanger feeding
// a sea-water heat pump.
func (l *Library) GeoHeatPump(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		hex := l.geothermal(a, br, name, at(pos, 20+off, 20))
		hp := l.seaHeatPump(a, br, "constant", name, at(pos, 20+off, 0), supplyTemperature(br))

		a.connect(indexed(prod+".ports", i+1), hex+".port_a1")
		a.connect(hex+".port_b1", hp+".port_a1")
		a.bind(supplyDir(br), hp+".port_b1", 0)
	}
	return a.result()
}

// HeatPumpGasBoiler builds, per production branch, a heat pump preheating
// ahead of a regulated boiler.
func (l *Library) HeatPumpGasBoiler(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		hp := l.seaHeatPump(a, br, "const", name, at(pos, 20+off, 20), PreheatTemperature)
		boiler := a.instance("boiler"+br+"_"+name, catalog.Boiler, at(pos, 20+off, 0), nil)
		ctrl, err := l.Controller(br+name, boiler+".sta_b.T", at(pos, off, 0), supplyTemperature(br))
		a.include(ctrl, err)

		a.connect(indexed(prod+".ports", i+1), hp+".port_a1")
		a.connect(hp+".port_b1", boiler+".port_a")
		a.connect(ctrl.Name+".y", boiler+".y")
		a.bind(supplyDir(br), boiler+".port_b", 0)
	}
	return a.result()
}

// Sea builds a sea-water exchanger per production branch
func (l *Library) Sea(name string, pos topology.Position) (Fragment, error) {
	a := l.assemble(name)
	prod := l.circulation(a, name, pos, l.productionPorts(), 1)

	for i, br := range l.branches() {
		off := float64(40 * i)
		hex := a.instance("hex"+br+"_"+name, catalog.PlateHeatExchanger, at(pos, 20+off, 0), nil)
		source := a.instance("source_sea"+br+"_"+name, catalog.MassFlowSource, at(pos, 30+off, -10), script.PortCount(1))
		sink := a.instance("sink_sea"+br+"_"+name, catalog.BoundaryPT, at(pos, 10+off, -10), script.PortCount(1))

		a.connect(indexed(prod+".ports", i+1), hex+".port_a1")
		a.connect(indexed(source+".ports", 1), hex+".port_a2")
		a.connect(hex+".port_b2", indexed(sink+".ports", 1))
		a.bind(supplyDir(br), hex+".port_b1", 0)
	}
	return a.result()
}

// geothermal declares an exchanger on a geothermal loop and returns its name.
// The network side is port_a1/port_b1.
func (l *Library) geothermal(a *assembler, br, name string, pos topology.Position) string {
	hex := a.instance("hex"+br+"_"+name, catalog.PlateHeatExchanger, pos, nil)
	source := a.instance("source_geo"+br+"_"+name, catalog.MassFlowSource, at(pos, 10, 10), script.PortCount(1))
	sink := a.instance("sink_geo"+br+"_"+name, catalog.BoundaryPT, at(pos, -10, 10), script.PortCount(1))

	a.connect(indexed(source+".ports", 1), hex+".port_a2")
	a.connect(hex+".port_b2", indexed(sink+".ports", 1))
	return hex
}

// seaHeatPump declares a heat pump on a sea-water loop with its condenser
// setpoint and returns its name. The network side is port_a1/port_b1.
func (l *Library) seaHeatPump(a *assembler, br, setName, name string, pos topology.Position, celsius float64) string {
	hp := a.instance("HP"+br+"_"+name, catalog.HeatPump, pos, nil)
	source := a.instance("source_sea"+br+"_"+name, catalog.MassFlowSource, at(pos, 10, -10), script.PortCount(1))
	sink := a.instance("sink_sea"+br+"_"+name, catalog.BoundaryPT, at(pos, -10, -10), script.PortCount(1))
	set := a.instance(setName+br+"_"+name, catalog.Constant, at(pos, -10, 10), nil, setpoint(celsius))

	a.connect(indexed(source+".ports", 1), hp+".port_a2")
	a.connect(hp+".port_b2", indexed(sink+".ports", 1))
	a.connect(set+".y", hp+".TSet")
	return hp
}
