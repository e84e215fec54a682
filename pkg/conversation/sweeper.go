package conversation

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mercator-hq/routecore/pkg/telemetry/logging"
)

// SweepSchedule is the default cron expression the sweeper runs on:
// once every ten minutes.
const SweepSchedule = "*/10 * * * *"

// SweeperMetricsSink receives a thread-expiration event per thread the
// sweeper removes. It is satisfied structurally by *metrics.Collector.
type SweeperMetricsSink interface {
	RecordThreadExpiration(backend string)
}

// SweeperService periodically sweeps a Backend's expired entries on a
// cron schedule, for backends that implement Sweeper. It is a no-op
// wrapper for backends that don't (e.g. nothing to actively evict).
type SweeperService struct {
	backend Backend
	cron    *cron.Cron
	logger  *logging.Logger
	metrics SweeperMetricsSink
}

// NewSweeperService builds a sweeper over backend. schedule is a
// standard five-field cron expression; pass "" to use SweepSchedule.
func NewSweeperService(backend Backend, schedule string, logger *logging.Logger) (*SweeperService, error) {
	if schedule == "" {
		schedule = SweepSchedule
	}

	s := &SweeperService{
		backend: backend,
		cron:    cron.New(),
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMetrics wires sink into the sweeper's per-run expiration counts.
// Passing nil disables metrics recording.
func (s *SweeperService) SetMetrics(sink SweeperMetricsSink) {
	s.metrics = sink
}

// Start launches the cron scheduler in the background. It returns
// immediately; call Stop to shut it down.
func (s *SweeperService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for any in-flight sweep to finish.
func (s *SweeperService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SweeperService) runSweep() {
	sweeper, ok := s.backend.(Sweeper)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := sweeper.Sweep(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("conversation sweep failed", "error", err)
		}
		return
	}

	if removed > 0 && s.metrics != nil {
		label := backendLabel(s.backend)
		for i := 0; i < removed; i++ {
			s.metrics.RecordThreadExpiration(label)
		}
	}

	if s.logger != nil && removed > 0 {
		s.logger.Info("conversation sweep removed expired threads", "count", removed)
	}
}
