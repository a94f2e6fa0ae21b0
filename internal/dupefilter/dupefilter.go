// Package dupefilter decides whether a request has already been accepted
// by any worker sharing the same job. It keeps no local state; the shared
// store's set is the single source of truth, so the answer is consistent
// across the whole fleet.
package dupefilter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/crawl-frontier/internal/frontier"
	"github.com/JakeFAU/crawl-frontier/internal/store"
)

// Filter records request fingerprints in a shared set keyed per job.
type Filter struct {
	store  store.Store
	key    string
	logger *zap.Logger
}

// New constructs a Filter over the named seen-set.
func New(st store.Store, key string, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{store: st, key: key, logger: logger}
}

// RequestSeen fingerprints the request and atomically adds the fingerprint
// to the shared set. It returns true when the fingerprint was already
// present. Two workers racing on the same request cannot both see false:
// the add-and-test is one store round trip.
func (f *Filter) RequestSeen(ctx context.Context, req *frontier.Request) (bool, error) {
	fp, err := frontier.Fingerprint(req)
	if err != nil {
		return false, fmt.Errorf("fingerprint request: %w", err)
	}
	added, err := f.store.SetAdd(ctx, f.key, fp)
	if err != nil {
		return false, fmt.Errorf("record fingerprint: %w", err)
	}
	return !added, nil
}

// Clear drops the shared seen-set. The scheduler calls this under its
// persistence policy; the filter itself never clears on Close.
func (f *Filter) Clear(ctx context.Context) error {
	if err := f.store.Delete(ctx, f.key); err != nil {
		return fmt.Errorf("clear seen set: %w", err)
	}
	return nil
}

// Close releases local resources. The shared set stays intact so a resumed
// job still recognizes previously seen requests.
func (f *Filter) Close(reason string) {
	f.logger.Debug("dupe filter closed", zap.String("reason", reason), zap.String("key", f.key))
}
