package geodata

import (
	"context"
	"fmt"
	"math"

	"github.com/solgrid-labs/siterank/internal/ahp"
)

// Coverage bounds for the synthetic model (India).
const (
	LatMin = 6.0
	LatMax = 37.0
	LonMin = 68.0
	LonMax = 97.0
)

// EarthRadiusKm is the mean earth radius used by Haversine.
const EarthRadiusKm = 6371.0088

// ValueSource supplies raw criterion values for a coordinate. It is the
// external collaborator boundary: the scoring core only ever sees the returned
// map.
type ValueSource interface {
	SiteValues(ctx context.Context, lat, lon float64) (map[string]float64, error)
}

// InBounds reports whether a coordinate falls inside the covered region.
func InBounds(lat, lon float64) bool {
	return lat >= LatMin && lat <= LatMax && lon >= LonMin && lon <= LonMax
}

// Haversine returns the great-circle distance in kilometres between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// demandCenters are the reference load centers used by the synthetic model.
var demandCenters = []struct {
	name     string
	lat, lon float64
}{
	{"delhi", 28.6139, 77.2090},
	{"mumbai", 19.0760, 72.8777},
	{"bengaluru", 12.9716, 77.5946},
	{"kolkata", 22.5726, 88.3639},
	{"indore", 22.7196, 75.8577},
}

// SyntheticSource derives plausible raw criterion values from the coordinate
// alone via smooth closed-form fields. It stands in for satellite and OSM
// lookups: deterministic, instant, and good enough to exercise the full
// scoring pipeline.
type SyntheticSource struct{}

// NewSyntheticSource returns the coordinate-derived value source.
func NewSyntheticSource() *SyntheticSource { return &SyntheticSource{} }

// SiteValues computes raw values for every default criterion. Each synthetic
// field yields a favourability fraction in [0, 1] which is then mapped onto
// the criterion's physical range, respecting its normalization direction.
func (s *SyntheticSource) SiteValues(_ context.Context, lat, lon float64) (map[string]float64, error) {
	if !InBounds(lat, lon) {
		return nil, fmt.Errorf("coordinate (%g, %g) outside covered region", lat, lon)
	}

	frac := map[string]float64{
		SolarRadiation:        unit(0.5 + 0.5*math.Sin(lat/10)),
		Slope:                 unit(1 - math.Abs(lat-22)/30),
		GridDistance:          unit(1 - math.Abs(lon-75)/20),
		LandCost:              unit(0.5 + 0.5*math.Cos(lon/10)),
		LandUse:               unit(0.6 + 0.4*math.Sin(lat*lon/1000)),
		ProtectedAreaDistance: unit(0.7 - 0.7*math.Sin(lat/15)),
		WaterBodyDistance:     unit(0.5 + 0.5*math.Cos(lat/12)),
		RoadDistance:          unit(1 - math.Abs(lat-23)/20),
		PopulationDensity:     unit(0.6 + 0.4*math.Cos(lat*lon/500)),
	}

	values := make(map[string]float64, len(DefaultCriteria()))
	for _, c := range DefaultCriteria() {
		if c.Name == DemandCenterDistance {
			values[c.Name] = math.Min(s.nearestDemandCenterKm(lat, lon), c.Max)
			continue
		}
		f := frac[c.Name]
		// Favourable fraction back to a raw reading: favourable means low for
		// lower-is-better criteria.
		if c.Direction == ahp.LowerIsBetter {
			values[c.Name] = c.Max - f*(c.Max-c.Min)
		} else {
			values[c.Name] = c.Min + f*(c.Max-c.Min)
		}
	}
	return values, nil
}

func (s *SyntheticSource) nearestDemandCenterKm(lat, lon float64) float64 {
	nearest := math.MaxFloat64
	for _, dc := range demandCenters {
		if d := Haversine(lat, lon, dc.lat, dc.lon); d < nearest {
			nearest = d
		}
	}
	return nearest
}

func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
