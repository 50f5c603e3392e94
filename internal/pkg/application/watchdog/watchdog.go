package watchdog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/application/telemetry"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-water-level/watchdog")

const (
	DefaultStaleAfter time.Duration = time.Hour
	DefaultInterval   time.Duration = time.Minute
)

type Config struct {
	StaleAfter time.Duration `yaml:"staleAfter"`
	Interval   time.Duration `yaml:"interval"`
}

type Watchdog interface {
	Start(ctx context.Context)
	Stop()
}

type StaleSensorFinder interface {
	ListStale(ctx context.Context, updatedBefore time.Time) ([]types.Sensor, error)
}

type watchdogImpl struct {
	sensors    StaleSensorFinder
	pipeline   telemetry.Pipeline
	staleAfter time.Duration
	interval   time.Duration
	now        func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(sensors StaleSensorFinder, pipeline telemetry.Pipeline, cfg Config) Watchdog {
	w := &watchdogImpl{
		sensors:    sensors,
		pipeline:   pipeline,
		staleAfter: cfg.StaleAfter,
		interval:   cfg.Interval,
		now:        func() time.Time { return time.Now().UTC() },
	}

	if w.staleAfter <= 0 {
		w.staleAfter = DefaultStaleAfter
	}
	if w.interval <= 0 {
		w.interval = DefaultInterval
	}

	return w
}

func (w *watchdogImpl) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *watchdogImpl) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *watchdogImpl) run(ctx context.Context) {
	log := logging.GetFromContext(ctx)
	log.Info("watchdog started", slog.Duration("stale_after", w.staleAfter), slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watchdog stopped")
			return
		case <-ticker.C:
			w.check(ctx, log)
		}
	}
}

// check marks every sensor that has not reported within staleAfter as offline.
func (w *watchdogImpl) check(ctx context.Context, l *slog.Logger) int {
	var err error

	ctx, span := tracer.Start(ctx, "check-stale-sensors")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

	stale, err := w.sensors.ListStale(ctx, w.now().Add(-w.staleAfter))
	if err != nil {
		log.Error("could not list stale sensors", "err", err.Error())
		return 0
	}

	marked := 0

	for _, s := range stale {
		_, markErr := w.pipeline.MarkOffline(ctx, s)
		if markErr != nil {
			log.Error("could not mark sensor as offline", "sensor_id", s.ID, "err", markErr.Error())
			continue
		}

		log.Info("sensor marked as offline", "sensor_id", s.ID, "site_id", s.SiteID, "last_updated", s.LastUpdated)
		marked++
	}

	return marked
}
