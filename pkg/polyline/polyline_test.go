package polyline

import (
	"math"
	"testing"
)

func TestDecode_Precision5(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected []Coordinate
	}{
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:    "two points",
			encoded: "_p~iF~ps|U_ulLnnqC",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
			},
		},
		{
			name:    "three points - Google example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Decode(tt.encoded, Precision5)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecode_EmptyString(t *testing.T) {
	if result := Decode("", Precision5); result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
	if result := Decode("", Precision6); result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestEncodeDecode_Precision6RoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Lat: 40.713469, Lon: -74.006735},
		{Lat: 40.714219, Lon: -74.007512},
		{Lat: 40.715378, Lon: -74.009124},
	}

	encoded := Encode(coords, Precision6)
	decoded := Decode(encoded, Precision6)

	if len(decoded) != len(coords) {
		t.Fatalf("expected %d coordinates, got %d", len(coords), len(decoded))
	}

	for i, coord := range decoded {
		if !coordsEqual(coord, coords[i], 0.0000015) {
			t.Errorf("coordinate %d: expected %+v, got %+v", i, coords[i], coord)
		}
	}
}

func TestDecode_Precision6KeepsSixDigits(t *testing.T) {
	// Precision 6 must preserve the sixth decimal digit, which precision 5
	// would round away.
	coords := []Coordinate{{Lat: 40.123456, Lon: -74.654321}}

	decoded := Decode(Encode(coords, Precision6), Precision6)
	if len(decoded) != 1 {
		t.Fatalf("expected 1 coordinate, got %d", len(decoded))
	}
	if math.Abs(decoded[0].Lat-40.123456) > 1e-9 {
		t.Errorf("lat lost precision: %v", decoded[0].Lat)
	}
	if math.Abs(decoded[0].Lon-(-74.654321)) > 1e-9 {
		t.Errorf("lon lost precision: %v", decoded[0].Lon)
	}
}

func TestEncode_Empty(t *testing.T) {
	if encoded := Encode(nil, Precision5); encoded != "" {
		t.Errorf("expected empty string, got %q", encoded)
	}
}

func TestLength(t *testing.T) {
	// Two points roughly 111km apart (1 degree of latitude).
	coords := []Coordinate{
		{Lat: 40.0, Lon: -74.0},
		{Lat: 41.0, Lon: -74.0},
	}

	length := Length(coords)
	if length < 110000 || length > 112000 {
		t.Errorf("expected length around 111km, got %.0f meters", length)
	}
}

func TestLength_TooFewPoints(t *testing.T) {
	if l := Length(nil); l != 0 {
		t.Errorf("expected 0 for nil, got %v", l)
	}
	if l := Length([]Coordinate{{Lat: 40, Lon: -74}}); l != 0 {
		t.Errorf("expected 0 for single point, got %v", l)
	}
}

func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) < tolerance && math.Abs(a.Lon-b.Lon) < tolerance
}
