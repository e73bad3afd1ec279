package geo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

func TestValidateNoFencesIsPermissive(t *testing.T) {
	v := Validate(-34.603722, -58.381592, nil)
	if !v.IsValid {
		t.Fatal("empty geofence set should be valid by default")
	}
	if v.Distance != 0 || v.Nearest != nil {
		t.Fatalf("got distance=%v nearest=%v, want 0 and nil", v.Distance, v.Nearest)
	}
}

func TestValidatePicksNearestFence(t *testing.T) {
	// From (0,0): near is ~30m away with a 50m radius, far is ~400m away
	// with a 500m radius. The nearer fence must win even though both
	// radii would accept the point.
	near := model.ValidLocation{ID: "1", Name: "near", Latitude: 0.00027, Longitude: 0, AllowedRadius: 50}
	far := model.ValidLocation{ID: "2", Name: "far", Latitude: 0.0036, Longitude: 0, AllowedRadius: 500}

	v := Validate(0, 0, []model.ValidLocation{far, near})
	if v.Nearest == nil || v.Nearest.ID != "1" {
		t.Fatalf("nearest = %+v, want fence 1", v.Nearest)
	}
	if !v.IsValid {
		t.Fatalf("point 30m from a 50m fence should be valid (distance %v)", v.Distance)
	}
	if v.Distance < 25 || v.Distance > 35 {
		t.Fatalf("distance = %v, want ~30m", v.Distance)
	}
}

func TestValidateOutsideRadius(t *testing.T) {
	fence := model.ValidLocation{ID: "1", Name: "campus", Latitude: 0.0036, Longitude: 0, AllowedRadius: 100}
	v := Validate(0, 0, []model.ValidLocation{fence})
	if v.IsValid {
		t.Fatalf("point ~400m from a 100m fence should be invalid (distance %v)", v.Distance)
	}
}

func TestValidateTieKeepsFirstFence(t *testing.T) {
	a := model.ValidLocation{ID: "a", Latitude: 0.001, Longitude: 0, AllowedRadius: 500}
	b := model.ValidLocation{ID: "b", Latitude: 0.001, Longitude: 0, AllowedRadius: 500}
	v := Validate(0, 0, []model.ValidLocation{a, b})
	if v.Nearest == nil || v.Nearest.ID != "a" {
		t.Fatalf("tie should keep first fence, got %+v", v.Nearest)
	}
}

type listerStub struct {
	fences []model.ValidLocation
	err    error
}

func (s *listerStub) ListLocations(ctx context.Context) ([]model.ValidLocation, error) {
	return s.fences, s.err
}

func TestCheckerStoreFailureIsPermissive(t *testing.T) {
	c := NewChecker(&listerStub{err: errors.New("store unreachable")})
	v := c.Check(context.Background(), 0, 0)
	if !v.IsValid {
		t.Fatal("store failure must degrade to permissive, not block")
	}
}

func TestDescribe(t *testing.T) {
	fence := model.ValidLocation{Name: "Campus Principal", Latitude: 0, Longitude: 0, AllowedRadius: 500}
	c := NewChecker(&listerStub{fences: []model.ValidLocation{fence}})

	got := c.Describe(context.Background(), 0, 0)
	if !strings.HasPrefix(got, "Dentro de Campus Principal") {
		t.Fatalf("Describe inside = %q", got)
	}

	got = c.Describe(context.Background(), 1, 1)
	if !strings.HasPrefix(got, "Fuera de Campus Principal") {
		t.Fatalf("Describe outside = %q", got)
	}

	empty := NewChecker(&listerStub{})
	if got := empty.Describe(context.Background(), 1, 1); !strings.HasPrefix(got, "Ubicación desconocida") {
		t.Fatalf("Describe with no fences = %q", got)
	}
}
