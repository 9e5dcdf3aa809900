package engine

import (
	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Outcome is the result class of one item in a bulk operation.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Stage names the step an item was in when its outcome was decided.
type Stage string

const (
	StageSource  Stage = "source"
	StageBackup  Stage = "backup"
	StageLocate  Stage = "locate"
	StageRestore Stage = "restore"
	StagePrune   Stage = "prune"
)

// ItemResult is the outcome for a single item.
type ItemResult struct {
	Item        string   `json:"item"`
	Outcome     Outcome  `json:"outcome"`
	Stage       Stage    `json:"stage"`
	SnapshotID  string   `json:"snapshot_id,omitempty"`
	Source      string   `json:"source,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Pruned      []string `json:"pruned,omitempty"`
	Err         error    `json:"-"`

	// Error is Err as text, so JSON reports carry the reason.
	Error string `json:"error,omitempty"`
}

// Report collects per-item results of a bulk operation in selection order.
type Report struct {
	Operation string       `json:"operation"`
	Scope     string       `json:"scope"`
	Results   []ItemResult `json:"results"`

	// Cancelled is set when the context stopped the batch before every
	// selected item was processed.
	Cancelled bool `json:"cancelled,omitempty"`
}

func (r *Report) add(res ItemResult) {
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	r.Results = append(r.Results, res)
}

func (r *Report) count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Succeeded returns the number of items that completed.
func (r *Report) Succeeded() int { return r.count(OutcomeOK) }

// Skipped returns the number of items that were skipped.
func (r *Report) Skipped() int { return r.count(OutcomeSkipped) }

// Failed returns the number of items that failed.
func (r *Report) Failed() int { return r.count(OutcomeFailed) }

// Err joins the errors of failed items, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed && res.Err != nil {
			errs = append(errs, errors.Wrapf(res.Err, "%s", res.Item))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
