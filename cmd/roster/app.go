package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/infrastructure/persistence/csvload"
	"github.com/jacksonlee411/rosterkit/modules/roster/infrastructure/persistence/memory"
	"github.com/jacksonlee411/rosterkit/modules/roster/services"
	"github.com/jacksonlee411/rosterkit/pkg/configuration"
	"github.com/jacksonlee411/rosterkit/pkg/eventbus"
	"github.com/jacksonlee411/rosterkit/pkg/logging"
	"github.com/jacksonlee411/rosterkit/pkg/rostermetrics"
)

// app wires repositories, the event bus, and the services over a CSV
// snapshot for one CLI invocation.
type app struct {
	roster    *services.RosterService
	hierarchy *services.HierarchyService
	dutyTypes dutytype.Repository
	report    *csvload.LoadReport
	log       *logrus.Logger
}

func (a *app) dutyType(ctx context.Context, id uuid.UUID) (dutytype.DutyType, error) {
	return a.dutyTypes.GetByID(ctx, id)
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg := configuration.Use()

	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log := logging.ConsoleLogger(level)

	dataDir := opts.dataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}

	unitRepo := memory.NewOrgUnitRepository()
	personnelRepo := memory.NewPersonnelRepository()
	dutyTypeRepo := memory.NewDutyTypeRepository()
	roleRepo := memory.NewRoleRepository()

	bus := eventbus.NewEventPublisher(log)
	hierarchy := services.NewHierarchyService(unitRepo, personnelRepo, log)
	hierarchy.SubscribeTo(bus)

	loader := csvload.NewLoader(dataDir, log)
	report, err := loader.LoadAll(ctx, csvload.Repositories{
		Units:     unitRepo,
		Personnel: personnelRepo,
		DutyTypes: dutyTypeRepo,
		Roles:     roleRepo,
	})
	if err != nil {
		return nil, withCode(exitLoad, fmt.Errorf("loading %s: %w", dataDir, err))
	}

	if _, err := hierarchy.Rebuild(ctx); err != nil {
		return nil, withCode(exitLoad, err)
	}

	roster := services.NewRosterService(
		unitRepo,
		personnelRepo,
		dutyTypeRepo,
		roleRepo,
		hierarchy,
		services.NewScopeService(log),
		services.NewEligibilityService(log),
		services.NewFairnessService(services.WithMaxExpectedStdDev(cfg.Fairness.MaxExpectedStdDev)),
		services.NewStandbyService(),
		bus,
		log,
	)

	if cfg.Prometheus.Enabled {
		controller := rostermetrics.NewPrometheusController(cfg.Prometheus.Path)
		go func() {
			if err := controller.Serve(cfg.Prometheus.Address); err != nil {
				log.WithError(err).Warn("metrics endpoint stopped")
			}
		}()
	}

	return &app{roster: roster, hierarchy: hierarchy, dutyTypes: dutyTypeRepo, report: report, log: log}, nil
}
