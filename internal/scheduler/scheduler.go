package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/tempad/internal/config"
	"github.com/omarshaarawi/tempad/internal/models"
)

const reportTimeout = 5 * time.Minute

// Warmer refreshes the shared reference data slot.
type Warmer interface {
	RefreshBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error)
}

type Reporter interface {
	TimelineText(ctx context.Context, managerID int) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	warmer      Warmer
	reporter    Reporter
	sendMessage func(string) error

	warmEvery time.Duration
	report    config.Report

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler wires the cache warmer and, when sendMessage is non-nil and a
// manager is configured, the recurring timeline report.
func NewScheduler(cfg *config.Config, warmer Warmer, reporter Reporter, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Report.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:           s,
		warmer:      warmer,
		reporter:    reporter,
		sendMessage: sendMessage,
		warmEvery:   cfg.FPLAPI.BootstrapTTL,
		report:      cfg.Report,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func (s *Scheduler) Start() error {
	// Reference data - every TTL, first run at startup
	_, err := s.s.NewJob(
		gocron.DurationJob(s.warmEvery),
		gocron.NewTask(s.warmCache),
		gocron.WithName("warm-reference-data"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache warm job: %w", err)
	}

	if s.reportEnabled() {
		_, err = s.s.NewJob(
			gocron.CronJob(s.report.Schedule, false),
			gocron.NewTask(s.sendTimelineReport),
			gocron.WithName("timeline-report"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create timeline report job: %w", err)
		}
		slog.Info("Scheduled timeline report", "manager", s.report.ManagerID, "schedule", s.report.Schedule, "timezone", s.report.Timezone)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) reportEnabled() bool {
	return s.sendMessage != nil && s.reporter != nil && s.report.ManagerID > 0
}

func (s *Scheduler) warmCache() {
	data, err := s.warmer.RefreshBootstrapStatic(s.ctx)
	if err != nil {
		slog.Error("Failed to refresh reference data", "error", err)
		return
	}
	slog.Debug("Warmed reference data", "players", len(data.Elements))
}

func (s *Scheduler) sendTimelineReport() {
	ctx, cancel := context.WithTimeout(s.ctx, reportTimeout)
	defer cancel()

	report, err := s.reporter.TimelineText(ctx, s.report.ManagerID)
	if err != nil {
		slog.Error("Failed to build timeline report", "manager", s.report.ManagerID, "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send timeline report", "manager", s.report.ManagerID, "error", err)
	}
}
