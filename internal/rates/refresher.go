package rates

import (
	"context"
	"log/slog"
	"time"

	"github.com/chotta-app/chotta/internal/storage"
)

// Refresher periodically pulls fresh rates for every supported currency
// pair and upserts them into the store. Failures are logged and the stale
// rates stay in place; conversion never blocks on the rate provider.
type Refresher struct {
	client     *Client
	store      storage.Store
	currencies []string
	interval   time.Duration
}

// NewRefresher creates a refresher over the given currency set.
// Rates are fetched pairwise: each currency serves as base once per cycle.
func NewRefresher(client *Client, store storage.Store, currencies []string, interval time.Duration) *Refresher {
	return &Refresher{
		client:     client,
		store:      store,
		currencies: currencies,
		interval:   interval,
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.RefreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}

// RefreshAll fetches and stores rates for every base in the currency set.
// A failing base is skipped so one provider hiccup cannot block the rest.
func (r *Refresher) RefreshAll(ctx context.Context) {
	now := time.Now().Unix()

	for _, base := range r.currencies {
		targets := make([]string, 0, len(r.currencies)-1)
		for _, cur := range r.currencies {
			if cur != base {
				targets = append(targets, cur)
			}
		}

		fetched, err := r.client.Latest(ctx, base, targets)
		if err != nil {
			slog.Warn("Rate refresh failed", "base", base, "error", err)
			continue
		}

		for target, rate := range fetched {
			if err := r.store.UpsertRate(ctx, base, target, rate, now); err != nil {
				slog.Error("Failed to store rate", "base", base, "target", target, "error", err)
			}
		}
	}
	slog.Debug("Rates refreshed", "currencies", len(r.currencies))
}
