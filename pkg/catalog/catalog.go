// Package catalog maps simulator component types to their default parameter
// modifiers.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownComponentType is returned when a component type has no catalog entry
var ErrUnknownComponentType = errors.New("unknown component type")

// ComponentType identifies a simulator component class
type ComponentType int

const (
	BoundaryPT ComponentType = iota + 1
	MassFlowSource
	PlateHeatExchanger
	Pipe
	LimPID
	Constant
	RealExpression
	TwoWayValve
	Boiler
	TemperatureSensor
	HeatPump
)

var classNames = map[ComponentType]string{
	BoundaryPT:         "Buildings.Fluid.Sources.Boundary_pT",
	MassFlowSource:     "Buildings.Fluid.Sources.MassFlowSource_T",
	PlateHeatExchanger: "Buildings.Fluid.HeatExchangers.PlateHeatExchangerEffectivenessNTU",
	Pipe:               "Buildings.Fluid.FixedResistances.Pipe",
	LimPID:             "Modelica.Blocks.Continuous.LimPID",
	Constant:           "Modelica.Blocks.Sources.Constant",
	RealExpression:     "Modelica.Blocks.Sources.RealExpression",
	TwoWayValve:        "Buildings.Fluid.Actuators.Valves.TwoWayLinear",
	Boiler:             "Buildings.Fluid.Boilers.BoilerPolynomial",
	TemperatureSensor:  "Buildings.Fluid.Sensors.Temperature",
	HeatPump:           "Buildings.Fluid.HeatPumps.Carnot_TCon",
}

// Types returns every known component type in declaration order
func Types() []ComponentType {
	return []ComponentType{
		BoundaryPT, MassFlowSource, PlateHeatExchanger, Pipe, LimPID, Constant,
		RealExpression, TwoWayValve, Boiler, TemperatureSensor, HeatPump,
	}
}

// ClassName returns the fully qualified simulator class path, or "" for an
// unknown type.
func (t ComponentType) ClassName() string {
	return classNames[t]
}

func (t ComponentType) String() string {
	if name, ok := classNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ComponentType(%d)", int(t))
}

// ParseType resolves a class path to its component type
func ParseType(className string) (ComponentType, error) {
	for t, name := range classNames {
		if name == className {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponentType, className)
}

const water = "Buildings.Media.Water"

var defaults = map[ComponentType][]string{
	BoundaryPT: {
		"redeclare package Medium = " + water,
		"T=273.15+40",
		"p=2e5",
	},
	MassFlowSource: {
		"redeclare package Medium = " + water,
		"T=273.15+40",
		"m_flow=1",
	},
	PlateHeatExchanger: {
		"redeclare package Medium1 = " + water,
		"redeclare package Medium2 = " + water,
		"configuration=Buildings.Fluid.Types.HeatExchangerConfiguration.CounterFlow",
		"m1_flow_nominal=1",
		"m2_flow_nominal=1",
		"dp1_nominal=1",
		"dp2_nominal=1",
		"use_Q_flow_nominal=false",
		"eps_nominal=0.9",
		"show_T=true",
	},
	Pipe: {
		"redeclare package Medium = " + water,
		"m_flow_nominal=1",
		"thicknessIns=0.05",
		"lambdaIns=0.03",
		"diameter=0.1",
	},
	LimPID: {
		"k=0.0001",
		"yMax=1",
		"yMin=0.001",
	},
	Constant:       {},
	RealExpression: {},
	TwoWayValve: {
		"redeclare package Medium = " + water,
		"CvData=Buildings.Fluid.Types.CvTypes.Kv",
		"m_flow_nominal=1",
		"Kv=10",
	},
	Boiler: {
		"redeclare package Medium = " + water,
		"m_flow_nominal=10",
		"dp_nominal=0",
		"Q_flow_nominal=1e6",
		"effCur=Buildings.Fluid.Types.EfficiencyCurves.Constant",
		"fue=Buildings.Fluid.Data.Fuels.NaturalGasHigherHeatingValue()",
	},
	TemperatureSensor: {
		"redeclare package Medium = " + water,
	},
	HeatPump: {
		"redeclare package Medium1 = " + water,
		"redeclare package Medium2 = " + water,
		"show_T=true",
		"QCon_flow_nominal=1e6",
		"use_eta_Carnot_nominal=false",
		"COP_nominal=4",
		"dp1_nominal=0",
		"dp2_nominal=0",
	},
}

// Catalog is an immutable table of default modifiers per component type
type Catalog struct {
	modifiers map[ComponentType][]string
}

var defaultCatalog = &Catalog{modifiers: defaults}

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

// Modifiers returns a copy of the default modifiers for t
func (c *Catalog) Modifiers(t ComponentType) ([]string, error) {
	mods, ok := c.modifiers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponentType, t)
	}
	out := make([]string, len(mods))
	copy(out, mods)
	return out, nil
}

// Lookup returns the default parameter text for t, modifiers joined by commas
func (c *Catalog) Lookup(t ComponentType) (string, error) {
	mods, err := c.Modifiers(t)
	if err != nil {
		return "", err
	}
	return strings.Join(mods, ", "), nil
}

// WithOverrides returns a copy of c where the entries named by class path in
// overrides replace the defaults. An empty slice clears a type's modifiers.
func (c *Catalog) WithOverrides(overrides map[string][]string) (*Catalog, error) {
	next := make(map[ComponentType][]string, len(c.modifiers))
	for t, mods := range c.modifiers {
		next[t] = mods
	}

	for className, mods := range overrides {
		t, err := ParseType(className)
		if err != nil {
			return nil, fmt.Errorf("catalog override: %w", err)
		}
		cp := make([]string, 0, len(mods))
		for _, m := range mods {
			if m = strings.TrimSpace(m); m != "" {
				cp = append(cp, m)
			}
		}
		next[t] = cp
	}

	return &Catalog{modifiers: next}, nil
}

// Lookup returns the default parameter text for t from the built-in catalog
func Lookup(t ComponentType) (string, error) {
	return defaultCatalog.Lookup(t)
}

// Modifiers returns the default modifiers for t from the built-in catalog
func Modifiers(t ComponentType) ([]string, error) {
	return defaultCatalog.Modifiers(t)
}
