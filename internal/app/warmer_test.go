package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_offers/internal/app"
)

func TestWarmer_ReportsPerTier(t *testing.T) {
	h := newHarness(false)
	h.inv.byCity = func(code string) ([]string, error) {
		if code == "PAR" {
			return ids(3), nil
		}
		return nil, nil
	}

	queries := app.QueriesFor("2025-06-01", "2025-06-03", 2)
	rep := app.NewWarmer(h.r, 2).Warm(context.Background(), queries)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 1, rep.Live)
	assert.Equal(t, len(queries)-1, rep.Fallback)
	assert.Zero(t, rep.Failed)

	// PAR is now cached; a second run does not touch by-city for it
	before, _, _ := h.inv.counts()
	rep = app.NewWarmer(h.r, 2).Warm(context.Background(), queries)
	after, _, _ := h.inv.counts()
	assert.Equal(t, 1, rep.Live)
	assert.Equal(t, len(queries)-1, after-before)
}

func TestWarmer_CountsFailures(t *testing.T) {
	h := newHarness(false)
	h.tokens.err = assert.AnError

	rep := app.NewWarmer(h.r, 3).Warm(context.Background(), app.QueriesFor("2025-06-01", "2025-06-03", 1))
	assert.Equal(t, len(app.SupportedCities()), rep.Failed)
}
