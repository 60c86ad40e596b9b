package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_offers/internal/domain"
)

// Warmer pre-resolves queries so the first user request hits the cache.
type Warmer struct {
	r       *Resolver
	workers int
}

type WarmReport struct {
	RunID    string
	Live     int // cached by the run
	Fallback int // only the static catalog answered; nothing was cached
	Failed   int
}

func NewWarmer(r *Resolver, workers int) *Warmer {
	if workers <= 0 {
		workers = 1
	}
	return &Warmer{r: r, workers: workers}
}

// QueriesFor builds one query per supported city for the given stay.
func QueriesFor(checkIn, checkOut string, adults int) []domain.ResolutionQuery {
	cities := SupportedCities()
	out := make([]domain.ResolutionQuery, 0, len(cities))
	for _, c := range cities {
		out = append(out, domain.ResolutionQuery{CityCode: c.Code, CheckIn: checkIn, CheckOut: checkOut, Adults: adults})
	}
	return out
}

func (w *Warmer) Warm(ctx context.Context, queries []domain.ResolutionQuery) WarmReport {
	rep := WarmReport{RunID: uuid.NewString()}
	l := log.With().Str("run_id", rep.RunID).Logger()

	sem := semaphore.NewWeighted(int64(w.workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, q := range queries {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			l.Warn().Err(err).Msg("warm run cancelled")
			break
		}

		wg.Add(1)
		go func(q domain.ResolutionQuery) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := w.r.Resolve(ctx, q)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				rep.Failed++
				l.Warn().Err(err).Str("city", q.CityCode).Msg("warm failed")
			case res.Source.Live():
				rep.Live++
				l.Info().Str("city", q.CityCode).Str("source", string(res.Source)).Int("offers", len(res.Offers)).Msg("warm ok")
			default:
				rep.Fallback++
				l.Info().Str("city", q.CityCode).Msg("warm fell back to catalog")
			}
		}(q)
	}

	wg.Wait()
	return rep
}
