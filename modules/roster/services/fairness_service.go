package services

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

// DefaultMaxExpectedStdDev is the calibration constant for the fairness
// index: the population standard deviation at which the index reaches 0.
const DefaultMaxExpectedStdDev = 5.0

// FairnessResult describes how evenly duty load is spread over a
// population. FairnessIndex is 0–100; 100 means perfectly even.
type FairnessResult struct {
	Mean          float64
	StdDev        float64
	FairnessIndex float64
}

// RankedPerson is one entry of a fairness ranking. Position is 1-based.
type RankedPerson struct {
	Position int
	Person   personnel.Personnel
}

type FairnessService struct {
	maxExpectedStdDev float64
}

type FairnessOption func(*FairnessService)

// WithMaxExpectedStdDev overrides the calibration constant.
func WithMaxExpectedStdDev(v float64) FairnessOption {
	return func(s *FairnessService) {
		if v > 0 {
			s.maxExpectedStdDev = v
		}
	}
}

func NewFairnessService(opts ...FairnessOption) *FairnessService {
	s := &FairnessService{maxExpectedStdDev: DefaultMaxExpectedStdDev}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute returns descriptive statistics and the normalized fairness index
// for a population's duty scores. An empty population is a valid state:
// mean 0, stddev 0, index 100.
//
// StdDev is the population standard deviation (divide by N): the question
// is how unequal this population is, not an estimate of a larger one.
func (s *FairnessService) Compute(scores []decimal.Decimal) FairnessResult {
	if len(scores) == 0 {
		return FairnessResult{Mean: 0, StdDev: 0, FairnessIndex: 100}
	}

	values := make([]float64, len(scores))
	sum := 0.0
	for i, d := range scores {
		values[i] = d.InexactFloat64()
		sum += values[i]
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	stdDev := math.Sqrt(variance)

	// stdDev can exceed the calibration constant; the clamp keeps the
	// index inside [0, 100].
	index := 100 - (stdDev/s.maxExpectedStdDev)*100
	index = math.Max(0, math.Min(100, index))

	return FairnessResult{Mean: mean, StdDev: stdDev, FairnessIndex: index}
}

// Rank orders people by duty score, highest first, with personnel id as
// the deterministic tiebreak. Repeated calls over unchanged input always
// assign identical positions; highest/lowest-N displays rely on that.
func (s *FairnessService) Rank(people []personnel.Personnel) []RankedPerson {
	ordered := make([]personnel.Personnel, len(people))
	copy(ordered, people)
	sort.SliceStable(ordered, func(i, j int) bool {
		cmp := ordered[i].DutyScore().Cmp(ordered[j].DutyScore())
		if cmp != 0 {
			return cmp > 0
		}
		return ordered[i].ID().String() < ordered[j].ID().String()
	})

	out := make([]RankedPerson, len(ordered))
	for i, p := range ordered {
		out[i] = RankedPerson{Position: i + 1, Person: p}
	}
	return out
}

// Top returns the n highest-scored entries of the ranking.
func (s *FairnessService) Top(people []personnel.Personnel, n int) []RankedPerson {
	ranked := s.Rank(people)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Bottom returns the n lowest-scored entries, lowest last.
func (s *FairnessService) Bottom(people []personnel.Personnel, n int) []RankedPerson {
	ranked := s.Rank(people)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[len(ranked)-n:]
}

// Scores extracts duty scores in input order.
func Scores(people []personnel.Personnel) []decimal.Decimal {
	out := make([]decimal.Decimal, len(people))
	for i, p := range people {
		out[i] = p.DutyScore()
	}
	return out
}
