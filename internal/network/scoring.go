package network

import "math"

// competitionDivisor converts raw competing seat counts into the
// competition score used by the BOS denominator.
const competitionDivisor = 10000.0

// DistanceFactor weights a route by how far the candidate sits from HQ.
// Very short hops are heavily penalized, the 200-2000 km band is the
// sweet spot, long haul is neutral. Boundaries are inclusive at both
// ends of the band.
func DistanceFactor(distanceKm float64) float64 {
	switch {
	case distanceKm < 200:
		return 0.1
	case distanceKm <= 2000:
		return 1.5
	default:
		return 1.0
	}
}

// BOS computes the Base Opportunity Score for one candidate airport.
// Zero population or income yields zero, keeping the candidate rankable
// instead of erroring. Inputs are assumed non-negative; the client clamps
// upstream data at ingestion.
func BOS(population, income, competitionSeats, distanceKm float64) float64 {
	if population <= 0 || income <= 0 {
		return 0
	}
	competitionScore := competitionSeats / competitionDivisor
	return math.Pow(population, 0.7) * math.Pow(income, 1.3) /
		math.Pow(1+competitionScore, 1.5) * DistanceFactor(distanceKm)
}
