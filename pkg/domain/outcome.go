package domain

import "fmt"

// OutcomeKind is the tag of FetchOutcome
type OutcomeKind int

// fetch outcome kinds
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeTransient
	OutcomePermanent
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeTransient:
		return "transient"
	case OutcomePermanent:
		return "permanent"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// FetchOutcome is the result of a single source fetch.
// Item is set only for OutcomeSuccess, Err only for OutcomeTransient and OutcomePermanent.
type FetchOutcome struct {
	Kind OutcomeKind
	Item NewsItem
	Err  error
}

// Success makes a successful outcome
func Success(item NewsItem) FetchOutcome { return FetchOutcome{Kind: OutcomeSuccess, Item: item} }

// Empty makes an outcome for a page without a current item
func Empty() FetchOutcome { return FetchOutcome{Kind: OutcomeEmpty} }

// Transient makes a retryable failure outcome
func Transient(err error) FetchOutcome { return FetchOutcome{Kind: OutcomeTransient, Err: err} }

// Permanent makes a non-retryable failure outcome
func Permanent(err error) FetchOutcome { return FetchOutcome{Kind: OutcomePermanent, Err: err} }

// Failed reports whether the outcome is a transient or permanent failure
func (o FetchOutcome) Failed() bool {
	return o.Kind == OutcomeTransient || o.Kind == OutcomePermanent
}

func (o FetchOutcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("success(%q)", o.Item.Title)
	case OutcomeTransient, OutcomePermanent:
		return fmt.Sprintf("%s(%v)", o.Kind, o.Err)
	}
	return o.Kind.String()
}
