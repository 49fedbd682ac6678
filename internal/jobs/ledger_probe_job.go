package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultProbeSchedule pings the ledger every fifteen seconds.
const DefaultProbeSchedule = "*/15 * * * * *"

// Pinger is the part of the ledger the probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LedgerProbeJob periodically pings the ledger and keeps the last outcome
// available to the health endpoint.
type LedgerProbeJob struct {
	ledger   Pinger
	schedule string
	timeout  time.Duration
	healthy  atomic.Bool
	gauge    prometheus.Gauge
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLedgerProbeJob creates the probe. An empty schedule means DefaultProbeSchedule.
// The gauge is registered on registry when registry is not nil.
func NewLedgerProbeJob(
	ledger Pinger,
	schedule string,
	timeout time.Duration,
	registry prometheus.Registerer,
	logger *slog.Logger,
) *LedgerProbeJob {
	if schedule == "" {
		schedule = DefaultProbeSchedule
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ftl_ledger_up",
		Help: "Whether the last ledger probe succeeded (1) or failed (0).",
	})
	if registry != nil {
		registry.MustRegister(gauge)
	}

	j := &LedgerProbeJob{
		ledger:   ledger,
		schedule: schedule,
		timeout:  timeout,
		gauge:    gauge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "ledger_probe_job"),
	}
	// Healthy until a probe says otherwise.
	j.setHealthy(true)
	return j
}

// Start runs one probe immediately and then schedules the rest.
func (j *LedgerProbeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Probe); err != nil {
		return err
	}

	j.Probe()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger probe job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running probe to finish.
func (j *LedgerProbeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Ledger probe job stopped")
}

// Probe pings the ledger once and records the outcome.
func (j *LedgerProbeJob) Probe() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	err := j.ledger.Ping(ctx)
	was := j.healthy.Load()
	j.setHealthy(err == nil)

	switch {
	case err != nil && was:
		j.logger.ErrorContext(ctx, "Ledger became unreachable", "error", err)
	case err == nil && !was:
		j.logger.InfoContext(ctx, "Ledger is reachable again")
	}
}

// Healthy reports the outcome of the last probe.
func (j *LedgerProbeJob) Healthy() bool {
	return j.healthy.Load()
}

func (j *LedgerProbeJob) setHealthy(ok bool) {
	j.healthy.Store(ok)
	if ok {
		j.gauge.Set(1)
	} else {
		j.gauge.Set(0)
	}
}
