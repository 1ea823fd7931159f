package templates

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSourceKind    = errors.New("unknown source kind")
	ErrMissingDrivingSignal = errors.New("controller requires a driving signal")
	ErrInvalidPipeCount     = errors.New("pipe count must be 1, 2 or 3")
)

// SourceKind selects the heat production family used for every source node
type SourceKind int

const (
	SimpleSource SourceKind = iota + 1
	GasBoiler
	GasBoilerGeo
	HeatPump
	GeoHeatPump
	HeatPumpGasBoiler
	Sea
)

var sourceKindNames = map[SourceKind]string{
	SimpleSource:      "simple_source",
	GasBoiler:         "gas_boiler",
	GasBoilerGeo:      "gas_boiler_geo",
	HeatPump:          "heat_pump",
	GeoHeatPump:       "geo_heat_pump",
	HeatPumpGasBoiler: "heat_pump_gas_boiler",
	Sea:               "sea",
}

// SourceKinds returns every source kind in declaration order
func SourceKinds() []SourceKind {
	return []SourceKind{SimpleSource, GasBoiler, GasBoilerGeo, HeatPump, GeoHeatPump, HeatPumpGasBoiler, Sea}
}

func (k SourceKind) String() string {
	if name, ok := sourceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// Valid reports whether k is a known kind
func (k SourceKind) Valid() bool {
	_, ok := sourceKindNames[k]
	return ok
}

// HasBoiler reports whether the kind burns gas
func (k SourceKind) HasBoiler() bool {
	return k == GasBoiler || k == GasBoilerGeo || k == HeatPumpGasBoiler
}

// HasHeatPump reports whether the kind includes a central heat pump
func (k SourceKind) HasHeatPump() bool {
	return k == HeatPump || k == GeoHeatPump || k == HeatPumpGasBoiler
}

// HasGeothermal reports whether the kind draws on a geothermal loop
func (k SourceKind) HasGeothermal() bool {
	return k == GasBoilerGeo || k == GeoHeatPump
}

// ParseSourceKind resolves a kind from its name, e.g. "gas_boiler"
func ParseSourceKind(name string) (SourceKind, error) {
	for k, n := range sourceKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSourceKind, name)
}

// MarshalText implements encoding.TextMarshaler
func (k SourceKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSourceKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SourceKind) UnmarshalText(text []byte) error {
	parsed, err := ParseSourceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
