package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"same point", 14.5995, 120.9842, 14.5995, 120.9842, 0, 0.001},
		{"manila to quezon city", 14.5995, 120.9842, 14.6760, 121.0437, 10.6, 1.0},
		{"manila to cebu", 14.5995, 120.9842, 10.3157, 123.8854, 571, 10},
		{"equator degree of longitude", 0, 0, 0, 1, 111.19, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Errorf("DistanceKm = %.2f, want %.2f ± %.2f", got, tt.wantKm, tt.tolKm)
			}
		})
	}
}

func TestWithinKm(t *testing.T) {
	// Manila city hall to Rizal Park is roughly a kilometer.
	if !WithinKm(14.5942, 120.9817, 14.5832, 120.9794, 2) {
		t.Error("nearby points should be within 2km")
	}
	if WithinKm(14.5995, 120.9842, 10.3157, 123.8854, 100) {
		t.Error("Manila and Cebu are not within 100km")
	}
}
