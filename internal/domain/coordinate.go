package domain

// Coordinate is an immutable geographic position in degrees (WGS 84).
type Coordinate struct {
	Lat float64
	Lon float64
}

// LonLat returns the coordinate as a [lon, lat] pair, the order used by
// the routing provider and the public API.
func (c Coordinate) LonLat() []float64 {
	return []float64{c.Lon, c.Lat}
}

// RoutePolyline is the ordered sequence of coordinates describing a
// driving route, as decoded from the routing provider. It is never
// mutated after creation.
type RoutePolyline []Coordinate

// Bounds is an axis-aligned geographic bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundsOf computes the bounding box of all points in the polyline.
func BoundsOf(route RoutePolyline) Bounds {
	if len(route) == 0 {
		return Bounds{}
	}

	b := Bounds{
		MinLat: route[0].Lat,
		MaxLat: route[0].Lat,
		MinLon: route[0].Lon,
		MaxLon: route[0].Lon,
	}
	for _, p := range route[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b
}

// Expand returns the bounds grown by the given buffer in degrees on
// every side.
func (b Bounds) Expand(degrees float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - degrees,
		MaxLat: b.MaxLat + degrees,
		MinLon: b.MinLon - degrees,
		MaxLon: b.MaxLon + degrees,
	}
}

// Contains reports whether the coordinate falls inside the bounds.
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
