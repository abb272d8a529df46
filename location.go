package globe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLocation is returned by the navigation methods when a name does not
// resolve. The navigation itself is a silent no-op; the error is diagnostic.
var ErrUnknownLocation = errors.New("globe: unknown location")

// Location is a named place with the two camera positions used to frame it.
// Locations are immutable once placed in a LocationTable.
type Location struct {
	Name string `yaml:"name"`
	// Near is the camera position used by ZoomInTo.
	Near Vec3 `yaml:"near"`
	// Far is the camera position used by RotateTo and ZoomOutTo.
	Far Vec3 `yaml:"far"`
	// Lat and Lng place the marker sprite on the globe, in degrees.
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// LocationFromLatLng builds a location whose near and far camera positions lie
// on the ray from the globe center through (lat, lng), at the given distances.
func LocationFromLatLng(name string, lat, lng, nearDist, farDist float64) Location {
	return Location{
		Name: name,
		Near: LatLngToVec(lat, lng, nearDist),
		Far:  LatLngToVec(lat, lng, farDist),
		Lat:  lat,
		Lng:  lng,
	}
}

// withDefaults fills in the camera positions of a location given only by
// coordinates.
func (l Location) withDefaults() Location {
	if l.Near == (Vec3{}) && l.Far == (Vec3{}) {
		return LocationFromLatLng(l.Name, l.Lat, l.Lng, DefaultNearDistance, DefaultFarDistance)
	}
	return l
}

// Default camera distances for locations built from coordinates.
const (
	DefaultNearDistance = 16.0
	DefaultFarDistance  = 28.0
)

// DefaultLocations returns the built-in location table.
func DefaultLocations() []Location {
	return []Location{
		LocationFromLatLng("Beijing", 39.90, 116.40, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("Shanghai", 31.23, 121.47, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("Singapore", 1.35, 103.82, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("London", 51.51, -0.13, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("New York", 40.71, -74.01, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("San Francisco", 37.77, -122.42, DefaultNearDistance, DefaultFarDistance),
		LocationFromLatLng("Sydney", -33.87, 151.21, DefaultNearDistance, DefaultFarDistance),
	}
}

// LocationTable resolves location names case-insensitively. Both the stored
// names and the lookup input are lowercased.
type LocationTable struct {
	byKey map[string]int
	list  []Location
}

// NewLocationTable builds a table from locs. Duplicate names (after
// lowercasing) and empty names are rejected. Entries with neither camera
// position set get positions derived from Lat and Lng.
func NewLocationTable(locs []Location) (*LocationTable, error) {
	t := &LocationTable{
		byKey: make(map[string]int, len(locs)),
		list:  make([]Location, 0, len(locs)),
	}
	for _, loc := range locs {
		key := locationKey(loc.Name)
		if key == "" {
			return nil, fmt.Errorf("location table: empty name")
		}
		if _, dup := t.byKey[key]; dup {
			return nil, fmt.Errorf("location table: duplicate name %q", loc.Name)
		}
		t.byKey[key] = len(t.list)
		t.list = append(t.list, loc.withDefaults())
	}
	return t, nil
}

func locationKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the location with the given name, ignoring case.
func (t *LocationTable) Lookup(name string) (Location, bool) {
	i, ok := t.byKey[locationKey(name)]
	if !ok {
		return Location{}, false
	}
	return t.list[i], true
}

// Locations returns the table in insertion order. The returned slice MUST NOT
// be mutated.
func (t *LocationTable) Locations() []Location {
	return t.list
}

// Len returns the number of locations.
func (t *LocationTable) Len() int {
	return len(t.list)
}
