package personnel

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Personnel is one service member on the roster. DutyScore accumulates
// credit for completed duties; it only grows, and mutation happens outside
// this core (score adjustments arrive through the repository).
type Personnel struct {
	id        uuid.UUID
	name      string
	unitID    uuid.UUID
	rank      Rank
	dutyScore decimal.Decimal
}

func New(name string, unitID uuid.UUID, rank Rank) Personnel {
	return Personnel{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		unitID:    unitID,
		rank:      rank,
		dutyScore: decimal.Zero,
	}
}

func Hydrate(id uuid.UUID, name string, unitID uuid.UUID, rank Rank, dutyScore decimal.Decimal) Personnel {
	return Personnel{
		id:        id,
		name:      strings.TrimSpace(name),
		unitID:    unitID,
		rank:      rank,
		dutyScore: dutyScore,
	}
}

func (p Personnel) ID() uuid.UUID              { return p.id }
func (p Personnel) Name() string               { return p.name }
func (p Personnel) UnitID() uuid.UUID          { return p.unitID }
func (p Personnel) Rank() Rank                 { return p.rank }
func (p Personnel) DutyScore() decimal.Decimal { return p.dutyScore }
func (p Personnel) IsZero() bool               { return p.id == uuid.Nil && p.name == "" }

// WithDutyScore returns a copy carrying the new score. Scores never go
// negative; callers crediting standby value add, never subtract below zero.
func (p Personnel) WithDutyScore(score decimal.Decimal) Personnel {
	if score.IsNegative() {
		score = decimal.Zero
	}
	p.dutyScore = score
	return p
}

// WithUnit returns a copy transferred to another unit.
func (p Personnel) WithUnit(unitID uuid.UUID) Personnel {
	p.unitID = unitID
	return p
}
