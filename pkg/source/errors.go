package source

import (
	"errors"
	"fmt"

	"github.com/umputun/newsbot/pkg/domain"
)

// FetchError is a classified fetch failure, Kind is either domain.OutcomeTransient or domain.OutcomePermanent
type FetchError struct {
	Kind domain.OutcomeKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " fetch error"
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether the failure may go away on retry
func (e *FetchError) Transient() bool { return e.Kind == domain.OutcomeTransient }

func transientf(format string, args ...any) error {
	return &FetchError{Kind: domain.OutcomeTransient, Err: fmt.Errorf(format, args...)}
}

func permanentf(format string, args ...any) error {
	return &FetchError{Kind: domain.OutcomePermanent, Err: fmt.Errorf(format, args...)}
}

// Classify converts fetcher results to an outcome. Errors without classification are permanent,
// an item without title is a parse failure.
func Classify(item *domain.NewsItem, err error) domain.FetchOutcome {
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.Transient() {
			return domain.Transient(err)
		}
		return domain.Permanent(err)
	}
	if item == nil {
		return domain.Empty()
	}
	if item.Title == "" {
		return domain.Permanent(errors.New("item has no title"))
	}
	return domain.Success(*item)
}
