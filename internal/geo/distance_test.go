package geo

import (
	"math"
	"testing"
)

func TestDistanceMetersSamePoint(t *testing.T) {
	if d := DistanceMeters(-34.603722, -58.381592, -34.603722, -58.381592); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := DistanceMeters(-34.603722, -58.381592, -38.9516, -68.0591)
	b := DistanceMeters(-38.9516, -68.0591, -34.603722, -58.381592)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestDistanceMetersOneDegreeLatitude(t *testing.T) {
	// One degree of latitude along a meridian is R*pi/180.
	want := earthRadiusKm * 1000 * math.Pi / 180
	got := DistanceMeters(0, 0, 1, 0)
	if math.Abs(got-want) > 1 {
		t.Fatalf("one degree latitude = %v m, want ~%v m", got, want)
	}
}

func TestDistanceMetersAntipodal(t *testing.T) {
	// Antipodal points are half the circumference apart.
	want := earthRadiusKm * 1000 * math.Pi
	got := DistanceMeters(0, 0, 0, 180)
	if math.Abs(got-want) > 1 {
		t.Fatalf("antipodal distance = %v m, want ~%v m", got, want)
	}
}

func TestDistanceMetersNonNegative(t *testing.T) {
	cases := [][4]float64{
		{10, 20, -30, 150},
		{89.9, 0, -89.9, 0},
		{0.0001, 0.0001, 0, 0},
	}
	for _, c := range cases {
		if d := DistanceMeters(c[0], c[1], c[2], c[3]); d < 0 {
			t.Fatalf("DistanceMeters(%v) = %v, want >= 0", c, d)
		}
	}
}
