// Package network implements the route-expansion planner: a three-phase
// pipeline that filters candidate airports around a headquarters, gathers
// per-airport competition concurrently, and ranks candidates by Base
// Opportunity Score.
package network

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/skyward-group/netscout/internal/airclub"
)

// ErrAirportNotFound marks an HQ IATA code that matched no fetched
// airport. User-correctable; the run halts.
var ErrAirportNotFound = eris.New("network: airport not found")

// Params are the inputs of one planner run.
type Params struct {
	HQCode        string  `json:"hq_code"`
	MinOpenness   int     `json:"min_openness"`
	MaxDistanceKm float64 `json:"max_distance_km"`
}

// DefaultMaxDistanceKm is applied when Params leaves MaxDistanceKm unset.
const DefaultMaxDistanceKm = 20000.0

// candidate is an airport that survived the Phase A filter, annotated
// with what later phases need. It lives for one run only.
type candidate struct {
	airport    airclub.Airport
	distanceKm float64
	openness   int
	seats      float64
}

// ScoredAirport is one ranked entry of a run's output.
type ScoredAirport struct {
	IATA             string  `json:"iata"`
	Name             string  `json:"name"`
	CountryCode      string  `json:"country_code"`
	Openness         int     `json:"openness"`
	DistanceKm       float64 `json:"distance_km"`
	Population       float64 `json:"population"`
	Income           float64 `json:"income"`
	CompetitionSeats float64 `json:"competition_seats"`
	BOS              float64 `json:"bos"`
}

// HQInfo identifies the resolved headquarters airport of a run.
type HQInfo struct {
	IATA        string  `json:"iata"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Result is the output of one planner run. An empty Airports slice is a
// valid outcome ("nothing matched the filters"), distinct from an error.
type Result struct {
	RunID         string          `json:"run_id"`
	HQ            HQInfo          `json:"hq"`
	Params        Params          `json:"params"`
	Airports      []ScoredAirport `json:"airports"`
	Candidates    int             `json:"candidates"`
	FailedFetches int             `json:"failed_fetches"`
	Elapsed       time.Duration   `json:"elapsed"`
}
