package source

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbot/pkg/domain"
)

// scriptedFetcher returns results from the script one by one, repeating the last one
type scriptedFetcher struct {
	calls  int32
	script []func() (*domain.NewsItem, error)
}

func (f *scriptedFetcher) ID() domain.SourceID { return domain.AgencyC }

func (f *scriptedFetcher) Fetch(context.Context) (*domain.NewsItem, error) {
	n := int(atomic.AddInt32(&f.calls, 1))
	if n > len(f.script) {
		n = len(f.script)
	}
	return f.script[n-1]()
}

func transientStep() (*domain.NewsItem, error) { return nil, transientf("connection reset") }
func permanentStep() (*domain.NewsItem, error) { return nil, permanentf("markup changed") }
func emptyStep() (*domain.NewsItem, error)     { return nil, nil }
func itemStep() (*domain.NewsItem, error)      { return &domain.NewsItem{Title: "T1", Body: "B1"}, nil }

func TestRetrier_Fetch(t *testing.T) {
	const base = 50 * time.Millisecond

	t.Run("transient exhausts attempts", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){transientStep}}
		r := NewRetrier(f, 2, base)
		st := time.Now()
		out := r.Fetch(context.Background())
		assert.Equal(t, domain.OutcomeTransient, out.Kind)
		assert.EqualError(t, out.Err, "connection reset")
		assert.Equal(t, int32(2), atomic.LoadInt32(&f.calls))
		assert.GreaterOrEqual(t, time.Since(st), base, "waits before the second attempt")
	})

	t.Run("permanent not retried", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){permanentStep}}
		out := NewRetrier(f, 3, base).Fetch(context.Background())
		assert.Equal(t, domain.OutcomePermanent, out.Kind)
		assert.Equal(t, int32(1), atomic.LoadInt32(&f.calls))
	})

	t.Run("empty not retried", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){emptyStep}}
		out := NewRetrier(f, 3, base).Fetch(context.Background())
		assert.Equal(t, domain.OutcomeEmpty, out.Kind)
		assert.Equal(t, int32(1), atomic.LoadInt32(&f.calls))
	})

	t.Run("success after transient", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){transientStep, itemStep}}
		out := NewRetrier(f, 2, base).Fetch(context.Background())
		require.Equal(t, domain.OutcomeSuccess, out.Kind)
		assert.Equal(t, "T1", out.Item.Title)
		assert.Equal(t, int32(2), atomic.LoadInt32(&f.calls))
	})

	t.Run("permanent after transient stops", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){transientStep, permanentStep, itemStep}}
		out := NewRetrier(f, 5, time.Millisecond).Fetch(context.Background())
		assert.Equal(t, domain.OutcomePermanent, out.Kind)
		assert.Equal(t, int32(2), atomic.LoadInt32(&f.calls))
	})

	t.Run("single attempt", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){transientStep}}
		out := NewRetrier(f, 0, base).Fetch(context.Background())
		assert.Equal(t, domain.OutcomeTransient, out.Kind)
		assert.Equal(t, int32(1), atomic.LoadInt32(&f.calls))
	})

	t.Run("canceled context stops retries", func(t *testing.T) {
		f := &scriptedFetcher{script: []func() (*domain.NewsItem, error){transientStep}}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		st := time.Now()
		out := NewRetrier(f, 10, time.Second).Fetch(ctx)
		assert.Equal(t, domain.OutcomeTransient, out.Kind)
		assert.Less(t, time.Since(st), 5*time.Second)
		assert.Less(t, atomic.LoadInt32(&f.calls), int32(10))
	})

	t.Run("id of wrapped fetcher", func(t *testing.T) {
		assert.Equal(t, domain.AgencyC, NewRetrier(&scriptedFetcher{}, 1, base).ID())
	})
}
