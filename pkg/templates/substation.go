package templates

import (
	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// Controller builds a PID regulator fed by a measured reference and a
// setpoint constant at celsius. The fragment name is the PID instance, whose
// output y drives the actuator.
func (l *Library) Controller(name, input string, pos topology.Position, celsius float64) (Fragment, error) {
	if input == "" {
		return Fragment{}, ErrMissingDrivingSignal
	}

	a := l.assemble("PID_" + name)
	pid := a.instance("PID_"+name, catalog.LimPID, at(pos, -30, 10), nil)
	in := a.instance("input_"+name, catalog.RealExpression, at(pos, -40, 0), script.DrivingSignal(input))
	set := a.instance("constant_"+name, catalog.Constant, at(pos, -50, 10), nil, setpoint(celsius))

	a.connect(in+".y", pid+".u_m")
	a.connect(set+".y", pid+".u_s")
	return a.result()
}

// Substation builds one consumer station named name with demand temperature
// celsius. The default variant is an exchanger, a valve and a controller; the
// heat pump variant serves the ring scheme.
func (l *Library) Substation(name string, pos topology.Position, celsius float64, heatPump bool) (Fragment, error) {
	a := l.assemble(name)

	source := a.instance("source_"+name, catalog.MassFlowSource, at(pos, 10, -10), script.PortCount(1))
	sink := a.instance("sink_"+name, catalog.BoundaryPT, at(pos, -10, -10), script.PortCount(1))

	if heatPump {
		hp := a.instance("HP_"+name, catalog.HeatPump, pos, nil)
		set := a.instance("constant_"+name, catalog.Constant, at(pos, -20, 10), nil, setpoint(celsius))

		a.connect(indexed(source+".ports", 1), hp+".port_a2")
		a.connect(hp+".port_b2", indexed(sink+".ports", 1))
		a.connect(set+".y", hp+".TSet")

		a.bind(topology.DirA, hp+".port_a1", 0)
		a.bind(topology.DirB, hp+".port_b1", 0)
		return a.result()
	}

	hex := a.instance("hex_"+name, catalog.PlateHeatExchanger, at(pos, 0, 10), nil)
	valve := a.instance("valve_"+name, catalog.TwoWayValve, at(pos, 20, 10), nil)
	ctrl, err := l.Controller(name, hex+".sta_b2.T", pos, celsius)
	a.include(ctrl, err)

	a.connect(indexed(source+".ports", 1), hex+".port_a2", pos)
	a.connect(hex+".port_b2", indexed(sink+".ports", 1), pos)
	a.connect(ctrl.Name+".y", valve+".y")
	a.connect(valve+".port_b", hex+".port_a1")

	a.bind(topology.DirA, valve+".port_a", 0)
	a.bind(topology.DirB, hex+".port_b1", 0)
	return a.result()
}

// DualSubstation builds the heating ("H_") and domestic hot water ("W_")
// stations of a consumer that needs both, and bridges their return sides.
// With two pipes the valve inlets share the supply; with three the heating
// station takes the low temperature supply.
func (l *Library) DualSubstation(node string, pos topology.Position, heating, dhw float64, heatPump bool) (Fragment, error) {
	hName, wName := "H_SST_"+node, "W_SST_"+node

	a := l.assemble("SST_" + node)
	a.include(l.Substation(hName, pos, heating, heatPump))
	a.include(l.Substation(wName, pos, dhw, heatPump))

	if heatPump {
		a.connect("HP_"+wName+".port_b1", "HP_"+hName+".port_a1")
		a.bind(topology.DirA, "HP_"+wName+".port_a1", 0)
		a.bind(topology.DirB, "HP_"+hName+".port_b1", 0)
		return a.result()
	}

	a.connect("hex_"+hName+".port_b1", "hex_"+wName+".port_b1")
	if l.config.Pipes == 2 {
		a.connect("valve_"+hName+".port_a", "valve_"+wName+".port_a")
	}

	a.bind(topology.DirA, "valve_"+wName+".port_a", 0)
	if l.config.Pipes == 3 {
		a.bind(topology.DirAL, "valve_"+hName+".port_a", 0)
	}
	a.bind(topology.DirB, "hex_"+hName+".port_b1", 0)
	return a.result()
}
