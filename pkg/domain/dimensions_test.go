package domain

import "testing"

func TestFormatRoomDimensionsRoundTrip(t *testing.T) {
	room := Room{Width: 10, Length: 10, Unit: UnitMetric}
	if got := FormatRoomDimensions(room, UnitMetric); got != "10.0 x 10.0 m (100.0 sq m)" {
		t.Fatalf("metric: got %q", got)
	}
	if got := FormatRoomDimensions(room, UnitImperial); got != "32.8 x 32.8 ft (1076.4 sq ft)" {
		t.Fatalf("imperial: got %q", got)
	}
	// repeated calls do not compound the conversion
	if got := FormatRoomDimensions(room, UnitImperial); got != "32.8 x 32.8 ft (1076.4 sq ft)" {
		t.Fatalf("second imperial call: got %q", got)
	}
}

func TestFormatRoomDimensionsImperialToMetric(t *testing.T) {
	room := Room{Width: 12, Length: 15, Unit: UnitImperial}
	if got := FormatRoomDimensions(room, UnitMetric); got != "3.7 x 4.6 m (16.7 sq m)" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatRoomDimensionsMissingUnitAssumesTarget(t *testing.T) {
	room := Room{Width: 4, Length: 2.5}
	if got := FormatRoomDimensions(room, UnitMetric); got != "4.0 x 2.5 m (10.0 sq m)" {
		t.Fatalf("metric target: got %q", got)
	}
	if got := FormatRoomDimensions(room, UnitImperial); got != "4.0 x 2.5 ft (10.0 sq ft)" {
		t.Fatalf("imperial target: got %q", got)
	}
}

func TestFormatRoomDimensionsFallbacks(t *testing.T) {
	cases := []struct {
		name string
		room Room
		want string
	}{
		{"legacy text", Room{Dimensions: "12x14"}, "12x14"},
		{"width only", Room{Width: 3, Dimensions: "old"}, "old"},
		{"nothing", Room{}, DimensionsNotSet},
		{"zero length", Room{Width: 3, Length: 0}, DimensionsNotSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRoomDimensions(tc.room, UnitMetric); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestParseUnits(t *testing.T) {
	if ParseUnits("metric") != UnitMetric {
		t.Fatalf("expected metric")
	}
	for _, raw := range []string{"", "imperial", "METRIC", "furlongs"} {
		if ParseUnits(raw) != UnitImperial {
			t.Fatalf("expected imperial for %q", raw)
		}
	}
}

func TestConvertLength(t *testing.T) {
	if got := ConvertLength(1, UnitMetric, UnitImperial); got != FeetPerMeter {
		t.Fatalf("metric->imperial: %v", got)
	}
	if got := ConvertLength(FeetPerMeter, UnitImperial, UnitMetric); got != 1 {
		t.Fatalf("imperial->metric: %v", got)
	}
	if got := ConvertLength(7, UnitMetric, UnitMetric); got != 7 {
		t.Fatalf("identity: %v", got)
	}
}
