package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsbot/pkg/domain"
)

//go:generate moq -out mocks/source_fetcher.go -pkg mocks -skip-ensure -fmt goimports . SourceFetcher
//go:generate moq -out mocks/change_store.go -pkg mocks -skip-ensure -fmt goimports . ChangeStore
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// SourceFetcher fetches the latest item of a source, failures are reported in the outcome
type SourceFetcher interface {
	ID() domain.SourceID
	Fetch(ctx context.Context) domain.FetchOutcome
}

// ChangeStore remembers the last notified title per source
type ChangeStore interface {
	CompareAndSet(ctx context.Context, id domain.SourceID, title string) (bool, error)
}

// Notifier delivers a news item
type Notifier interface {
	Notify(ctx context.Context, item domain.NewsItem) error
}

// Coordinator runs poll cycles: fetches all sources concurrently, then decides and notifies
// one source at a time, in the order fetchers were given.
type Coordinator struct {
	fetchers []SourceFetcher
	store    ChangeStore
	notifier Notifier

	mu   sync.RWMutex
	last *domain.CycleReport
}

// CoordinatorParams holds coordinator dependencies
type CoordinatorParams struct {
	Fetchers []SourceFetcher // processing order
	Store    ChangeStore
	Notifier Notifier
}

// NewCoordinator makes a coordinator
func NewCoordinator(p CoordinatorParams) *Coordinator {
	return &Coordinator{fetchers: p.Fetchers, store: p.Store, notifier: p.Notifier}
}

// RunCycle polls every source once and returns what happened to each of them.
// A failure of one source never affects the others.
func (c *Coordinator) RunCycle(ctx context.Context) domain.CycleReport {
	report := domain.NewCycleReport(time.Now())

	// fetchers never return errors to the group, one failure can't cancel the others
	outcomes := make([]domain.FetchOutcome, len(c.fetchers))
	var g errgroup.Group
	for i, f := range c.fetchers {
		g.Go(func() error {
			outcomes[i] = f.Fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	// handled sequentially, pacing and the single writer store depend on it
	for i, f := range c.fetchers {
		report.Outcomes[f.ID()] = c.handle(ctx, f.ID(), outcomes[i])
	}
	report.Finished = time.Now()

	c.mu.Lock()
	c.last = &report
	c.mu.Unlock()

	lgr.Printf("[INFO] cycle completed in %v: notified %d, unchanged %d, fetch failed %d, delivery failed %d, store failed %d",
		report.Finished.Sub(report.Started).Round(time.Millisecond),
		report.Count(domain.StatusNotified), report.Count(domain.StatusUnchanged), report.Count(domain.StatusFetchFailed),
		report.Count(domain.StatusDeliveryFailed), report.Count(domain.StatusStoreFailed))
	return report
}

// handle maps fetch outcome to the source status, storing and notifying new items
func (c *Coordinator) handle(ctx context.Context, id domain.SourceID, outcome domain.FetchOutcome) domain.SourceOutcome {
	res := domain.SourceOutcome{Source: id}

	switch outcome.Kind {
	case domain.OutcomeEmpty:
		lgr.Printf("[DEBUG] %s has no current item", id)
		res.Status = domain.StatusUnchanged
		return res
	case domain.OutcomeTransient, domain.OutcomePermanent:
		lgr.Printf("[WARN] %s fetch failed (%s): %v", id, outcome.Kind, outcome.Err)
		res.Status = domain.StatusFetchFailed
		res.Reason = reason(outcome.Err, outcome.Kind.String())
		return res
	case domain.OutcomeSuccess:
	default:
		res.Status = domain.StatusFetchFailed
		res.Reason = "unexpected outcome " + outcome.Kind.String()
		return res
	}

	item := outcome.Item
	res.Title = item.Title

	// the store is updated before delivery, a failed delivery is not retried next cycle
	changed, err := c.store.CompareAndSet(ctx, id, item.Title)
	if err != nil {
		lgr.Printf("[ERROR] %s store failed: %v", id, err)
		res.Status = domain.StatusStoreFailed
		res.Reason = reason(err, "store error")
		return res
	}
	if !changed {
		lgr.Printf("[DEBUG] %s unchanged: %q", id, item.Title)
		res.Status = domain.StatusUnchanged
		return res
	}

	lgr.Printf("[INFO] %s new item: %q", id, item.Title)
	if err := c.notifier.Notify(ctx, item); err != nil {
		lgr.Printf("[ERROR] %s delivery failed for %q: %v", id, item.Title, err)
		res.Status = domain.StatusDeliveryFailed
		res.Reason = reason(err, "delivery error")
		return res
	}
	res.Status = domain.StatusNotified
	return res
}

// LastReport returns the report of the last completed cycle
func (c *Coordinator) LastReport() (domain.CycleReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return domain.CycleReport{}, false
	}
	return *c.last, true
}

// Sources returns ids of polled sources in processing order
func (c *Coordinator) Sources() []domain.SourceID {
	res := make([]domain.SourceID, 0, len(c.fetchers))
	for _, f := range c.fetchers {
		res = append(res, f.ID())
	}
	return res
}

func reason(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}
