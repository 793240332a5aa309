package domain

import (
	"sort"
	"time"
)

// CycleStatus is the per-source result of one poll cycle
type CycleStatus string

// cycle statuses
const (
	StatusNotified       CycleStatus = "notified"
	StatusUnchanged      CycleStatus = "unchanged"
	StatusFetchFailed    CycleStatus = "fetch_failed"
	StatusDeliveryFailed CycleStatus = "delivery_failed"
	StatusStoreFailed    CycleStatus = "store_failed"
)

// SourceOutcome describes what happened to a single source during a cycle
type SourceOutcome struct {
	Source SourceID    `json:"source"`
	Status CycleStatus `json:"status"`
	Title  string      `json:"title,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// CycleReport maps every polled source to its outcome
type CycleReport struct {
	Started  time.Time                  `json:"started"`
	Finished time.Time                  `json:"finished"`
	Outcomes map[SourceID]SourceOutcome `json:"outcomes"`
}

// NewCycleReport makes an empty report started at the given time
func NewCycleReport(started time.Time) CycleReport {
	return CycleReport{Started: started, Outcomes: make(map[SourceID]SourceOutcome)}
}

// Count returns number of sources with the given status
func (r CycleReport) Count(status CycleStatus) int {
	res := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			res++
		}
	}
	return res
}

// Sorted returns outcomes ordered by source id
func (r CycleReport) Sorted() []SourceOutcome {
	res := make([]SourceOutcome, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		res = append(res, o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Source < res[j].Source })
	return res
}
