package network

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skyward-group/netscout/internal/airclub"
	"github.com/skyward-group/netscout/internal/geo"
)

// Fetcher is the slice of the Airline Club client the planner needs.
type Fetcher interface {
	FetchCountries(ctx context.Context) ([]airclub.Country, error)
	FetchAirports(ctx context.Context) ([]airclub.Airport, error)
	FetchAirportLinks(ctx context.Context, airportID int) ([]airclub.Link, error)
}

// PlannerOptions tune the planner. Zero values fall back to defaults.
type PlannerOptions struct {
	// Concurrency bounds the Phase B link-fetch fan-out.
	Concurrency int
	// TopN truncates the ranked output.
	TopN int
}

// Planner runs the filter -> competition -> rank pipeline. Safe for
// concurrent runs; the only shared state is the client's cache.
type Planner struct {
	client Fetcher
	opts   PlannerOptions
}

// NewPlanner creates a Planner on top of the given client.
func NewPlanner(client Fetcher, opts PlannerOptions) *Planner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 20
	}
	if opts.TopN <= 0 {
		opts.TopN = 15
	}
	return &Planner{client: client, opts: opts}
}

// Run executes one pipeline run. The three phases are strict barriers:
// filtering finishes before any link fetch starts, and every link fetch
// has settled (success or recorded failure) before scoring begins.
func (p *Planner) Run(ctx context.Context, params Params) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	params.HQCode = airclub.NormalizeIATA(params.HQCode)
	if params.MaxDistanceKm <= 0 {
		params.MaxDistanceKm = DefaultMaxDistanceKm
	}

	log := zap.L().With(
		zap.String("run_id", runID),
		zap.String("hq", params.HQCode),
	)

	// Phase A: base data, HQ resolution, filter.
	hq, candidates, err := p.filterCandidates(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      runID,
		Params:     params,
		Airports:   []ScoredAirport{},
		Candidates: len(candidates),
		HQ: HQInfo{
			IATA:        hq.IATA,
			Name:        hq.Name,
			CountryCode: hq.CountryCode,
			Latitude:    hq.Latitude,
			Longitude:   hq.Longitude,
		},
	}

	if len(candidates) == 0 {
		log.Info("planner: no airports matched the filters",
			zap.Int("min_openness", params.MinOpenness),
			zap.Float64("max_distance_km", params.MaxDistanceKm),
		)
		result.Elapsed = time.Since(start)
		return result, nil
	}

	// Phase B: competition fan-out with a join barrier.
	result.FailedFetches = p.gatherCompetition(ctx, log, candidates)

	// Phase C: score, rank, truncate.
	result.Airports = p.rank(candidates)
	result.Elapsed = time.Since(start)

	log.Info("planner: run complete",
		zap.Int("candidates", result.Candidates),
		zap.Int("failed_fetches", result.FailedFetches),
		zap.Int("ranked", len(result.Airports)),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// filterCandidates fetches the base datasets and applies the openness and
// distance filters around the resolved HQ.
func (p *Planner) filterCandidates(ctx context.Context, params Params) (airclub.Airport, []*candidate, error) {
	var (
		countries []airclub.Country
		airports  []airclub.Airport
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countries, err = p.client.FetchCountries(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		airports, err = p.client.FetchAirports(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return airclub.Airport{}, nil, eris.Wrap(err, "planner: fetch base data")
	}

	openness := make(map[string]int, len(countries))
	for _, c := range countries {
		openness[c.Code] = c.Openness
	}

	var hq airclub.Airport
	found := false
	for _, a := range airports {
		if a.IATA == params.HQCode {
			hq = a
			found = true
			break
		}
	}
	if !found {
		return airclub.Airport{}, nil, eris.Wrapf(ErrAirportNotFound, "iata %q", params.HQCode)
	}

	var candidates []*candidate
	for _, a := range airports {
		if a.ID == hq.ID {
			continue
		}
		open := openness[a.CountryCode] // absent country reads as 0
		if open < params.MinOpenness {
			continue
		}
		dist := geo.Haversine(hq.Latitude, hq.Longitude, a.Latitude, a.Longitude)
		if dist > params.MaxDistanceKm {
			continue
		}
		candidates = append(candidates, &candidate{
			airport:    a,
			distanceKm: dist,
			openness:   open,
		})
	}
	return hq, candidates, nil
}

// gatherCompetition fetches every candidate's link listing under the
// concurrency limit and sums seat capacities. A failed fetch zero-fills
// that candidate's competition instead of aborting the run; the count of
// failures is returned for observability.
func (p *Planner) gatherCompetition(ctx context.Context, log *zap.Logger, candidates []*candidate) int {
	var failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for _, c := range candidates {
		g.Go(func() error {
			links, err := p.client.FetchAirportLinks(gCtx, c.airport.ID)
			if err != nil {
				failed.Add(1)
				log.Warn("planner: competition fetch failed, scoring with zero seats",
					zap.String("iata", c.airport.IATA),
					zap.Error(err),
				)
				return nil
			}
			var seats float64
			for _, l := range links {
				seats += l.Capacity
			}
			c.seats = seats
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; Wait is the phase barrier

	return int(failed.Load())
}

// rank scores every candidate, sorts by BOS descending with ascending
// IATA as the tie-break, and truncates to the configured top N.
func (p *Planner) rank(candidates []*candidate) []ScoredAirport {
	scored := make([]ScoredAirport, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredAirport{
			IATA:             c.airport.IATA,
			Name:             c.airport.Name,
			CountryCode:      c.airport.CountryCode,
			Openness:         c.openness,
			DistanceKm:       c.distanceKm,
			Population:       c.airport.Population,
			Income:           c.airport.Income,
			CompetitionSeats: c.seats,
			BOS:              BOS(c.airport.Population, c.airport.Income, c.seats, c.distanceKm),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].BOS != scored[j].BOS {
			return scored[i].BOS > scored[j].BOS
		}
		return scored[i].IATA < scored[j].IATA
	})

	if len(scored) > p.opts.TopN {
		scored = scored[:p.opts.TopN]
	}
	return scored
}
