package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/pkg/logging"
)

func testLogger() *logrus.Logger {
	return logging.ConsoleLogger(logrus.PanicLevel)
}

// uid returns a stable UUID for readable test fixtures.
func uid(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func testUnit(n int, name string, level orgunit.Level, parent *uuid.UUID, org string) orgunit.OrgUnit {
	return orgunit.Hydrate(uid(n), name, level, parent, org)
}

func testPerson(n int, unitID uuid.UUID, rank personnel.Rank, score float64) personnel.Personnel {
	return personnel.Hydrate(uid(1000+n), fmt.Sprintf("person-%d", n), unitID, rank, decimal.NewFromFloat(score))
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }
