package domain

import "fmt"

// FeetPerMeter is the fixed conversion ratio used for all dimension display.
const FeetPerMeter = 3.28084

// DimensionsNotSet is shown when a room has neither numeric nor legacy dimensions.
const DimensionsNotSet = "Dimensions not set"

// ParseUnits maps a stored preference value to a Unit; only "metric" selects
// the metric system.
func ParseUnits(raw string) Unit {
	if raw == string(UnitMetric) {
		return UnitMetric
	}
	return UnitImperial
}

// Label returns the short length label for the unit system.
func (u Unit) Label() string {
	if u == UnitMetric {
		return "m"
	}
	return "ft"
}

// ConvertLength converts v from one unit system to another. An empty source
// unit is assumed to already match the target.
func ConvertLength(v float64, from, to Unit) float64 {
	if from == "" || from == to {
		return v
	}
	switch {
	case from == UnitMetric && to == UnitImperial:
		return v * FeetPerMeter
	case from == UnitImperial && to == UnitMetric:
		return v / FeetPerMeter
	}
	return v
}

// FormatRoomDimensions renders width, length and area in the target unit,
// e.g. "10.0 x 10.0 m (100.0 sq m)". Rooms without both numeric dimensions
// fall back to the legacy text, then to DimensionsNotSet.
func FormatRoomDimensions(room Room, target Unit) string {
	if room.Width != 0 && room.Length != 0 {
		w := ConvertLength(room.Width, room.Unit, target)
		l := ConvertLength(room.Length, room.Unit, target)
		label := target.Label()
		return fmt.Sprintf("%.1f x %.1f %s (%.1f sq %s)", w, l, label, w*l, label)
	}
	if room.Dimensions != "" {
		return room.Dimensions
	}
	return DimensionsNotSet
}
