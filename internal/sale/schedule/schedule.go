// Package schedule holds the ordered phase windows of a sale and decides
// whether a contribution is admitted at a given time.
package schedule

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// Schedule is immutable after New.
type Schedule struct {
	phases []model.Phase
}

// Decision describes the phase that admitted a contribution.
type Decision struct {
	Index int
	Phase model.Phase
}

// New validates and copies phases. Phases must be chronologically ordered and
// non-overlapping, every window must close after it opens, every phase needs a
// positive minimum contribution and immediate phases a positive rate. Only the
// last phase may be deferred.
func New(phases []model.Phase) (*Schedule, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: at least one phase is required", model.ErrInvalidConfig)
	}

	copied := make([]model.Phase, len(phases))
	for i, p := range phases {
		if !p.ClosingTime.After(p.OpeningTime) {
			return nil, fmt.Errorf("%w: phase %d closes at %s, not after opening %s",
				model.ErrInvalidConfig, i, p.ClosingTime.Format(time.RFC3339), p.OpeningTime.Format(time.RFC3339))
		}
		if i > 0 && p.OpeningTime.Before(phases[i-1].ClosingTime) {
			return nil, fmt.Errorf("%w: phase %d opens before phase %d closes", model.ErrInvalidConfig, i, i-1)
		}
		if p.MinContribution == nil || p.MinContribution.IsZero() {
			return nil, fmt.Errorf("%w: phase %d minimum contribution must be positive", model.ErrInvalidConfig, i)
		}
		if p.Deferred && i != len(phases)-1 {
			return nil, fmt.Errorf("%w: only the last phase may be deferred, phase %d is", model.ErrInvalidConfig, i)
		}
		if !p.Deferred && (p.Rate == nil || p.Rate.IsZero()) {
			return nil, fmt.Errorf("%w: phase %d rate must be positive", model.ErrInvalidConfig, i)
		}

		copied[i] = model.Phase{
			OpeningTime:     p.OpeningTime,
			ClosingTime:     p.ClosingTime,
			Rate:            cloneOrZero(p.Rate),
			MinContribution: p.MinContribution.Clone(),
			Deferred:        p.Deferred,
		}
	}

	return &Schedule{phases: copied}, nil
}

// Active returns the phase whose window contains now.
func (s *Schedule) Active(now time.Time) (Decision, bool) {
	for i, p := range s.phases {
		if p.Contains(now) {
			p.Rate = p.Rate.Clone()
			p.MinContribution = p.MinContribution.Clone()
			return Decision{Index: i, Phase: p}, true
		}
	}
	return Decision{Index: -1}, false
}

// Admit decides whether value may be contributed at now. It has no side effects.
func (s *Schedule) Admit(now time.Time, value *uint256.Int) (Decision, error) {
	d, ok := s.Active(now)
	if !ok {
		return d, fmt.Errorf("%w: no phase open at %s", model.ErrAdmissionRejected, now.Format(time.RFC3339))
	}
	if value == nil || value.Lt(d.Phase.MinContribution) {
		return d, fmt.Errorf("%w: value %s below phase %d minimum %s",
			model.ErrAdmissionRejected, decOrZero(value), d.Index, d.Phase.MinContribution.Dec())
	}
	return d, nil
}

// OpeningTime is the opening of the first phase.
func (s *Schedule) OpeningTime() time.Time {
	return s.phases[0].OpeningTime
}

// ClosingTime is the closing of the last phase.
func (s *Schedule) ClosingTime() time.Time {
	return s.phases[len(s.phases)-1].ClosingTime
}

// HasEnded reports whether the last window has closed.
func (s *Schedule) HasEnded(now time.Time) bool {
	return !now.Before(s.ClosingTime())
}

// Len returns the number of phases.
func (s *Schedule) Len() int {
	return len(s.phases)
}

// Phases returns a copy of the configured phases.
func (s *Schedule) Phases() []model.Phase {
	out := make([]model.Phase, len(s.phases))
	for i, p := range s.phases {
		p.Rate = p.Rate.Clone()
		p.MinContribution = p.MinContribution.Clone()
		out[i] = p
	}
	return out
}

func cloneOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}

func decOrZero(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
