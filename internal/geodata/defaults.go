package geodata

import "github.com/solgrid-labs/siterank/internal/ahp"

// Criterion names for the solar siting registry.
const (
	SolarRadiation        = "solar_radiation"
	Slope                 = "slope"
	GridDistance          = "grid_distance"
	LandCost              = "land_cost"
	LandUse               = "land_use"
	ProtectedAreaDistance = "protected_area_distance"
	WaterBodyDistance     = "water_body_distance"
	RoadDistance          = "road_distance"
	DemandCenterDistance  = "demand_center_distance"
	PopulationDensity     = "population_density"
)

// DefaultCriteria returns the ten solar siting criteria with their physical
// raw ranges. Distances to infrastructure (grid, roads, demand centers) score
// lower-is-better; buffers from sensitive features (protected areas, water
// bodies) score higher-is-better.
func DefaultCriteria() []ahp.Criterion {
	return []ahp.Criterion{
		{Name: SolarRadiation, Unit: "kWh/m2/day", Min: 3.5, Max: 7.5, Direction: ahp.HigherIsBetter},
		{Name: Slope, Unit: "deg", Min: 0, Max: 30, Direction: ahp.LowerIsBetter},
		{Name: GridDistance, Unit: "km", Min: 0, Max: 50, Direction: ahp.LowerIsBetter},
		{Name: LandCost, Unit: "index", Min: 0, Max: 100, Direction: ahp.LowerIsBetter},
		{Name: LandUse, Unit: "index", Min: 0, Max: 100, Direction: ahp.HigherIsBetter},
		{Name: ProtectedAreaDistance, Unit: "km", Min: 0, Max: 25, Direction: ahp.HigherIsBetter},
		{Name: WaterBodyDistance, Unit: "km", Min: 0, Max: 10, Direction: ahp.HigherIsBetter},
		{Name: RoadDistance, Unit: "km", Min: 0, Max: 20, Direction: ahp.LowerIsBetter},
		{Name: DemandCenterDistance, Unit: "km", Min: 0, Max: 1200, Direction: ahp.LowerIsBetter},
		{Name: PopulationDensity, Unit: "persons/km2", Min: 0, Max: 2000, Direction: ahp.LowerIsBetter},
	}
}

// DefaultWeights returns the calibrated global weights, the product of the
// main-criteria priorities (technical 0.693, environmental 0.187, social
// 0.080) and each group's local sub-weights. They are renormalized to sum to
// 1 when a weight vector is built from them.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		SolarRadiation:        0.693 * 0.558,
		Slope:                 0.693 * 0.262,
		GridDistance:          0.693 * 0.130,
		LandCost:              0.693 * 0.050,
		LandUse:               0.187 * 0.258,
		ProtectedAreaDistance: 0.187 * 0.637,
		WaterBodyDistance:     0.187 * 0.105,
		RoadDistance:          0.080 * 0.637,
		DemandCenterDistance:  0.080 * 0.258,
		PopulationDensity:     0.080 * 0.105,
	}
}

// DefaultRegistry builds the registry for the default criteria set.
func DefaultRegistry() (*ahp.Registry, error) {
	return ahp.NewRegistry(DefaultCriteria())
}
