package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/diwise/iot-water-level/internal/pkg/application/alerts"
	"github.com/diwise/iot-water-level/internal/pkg/application/readings"
	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-water-level/telemetry")

type Result struct {
	Sensor    types.Sensor `json:"sensor"`
	AlertID   string       `json:"alertId,omitempty"`
	ReadingID string       `json:"readingId,omitempty"`
}

//go:generate moq -rm -out pipeline_mock.go . Pipeline
type Pipeline interface {
	Ingest(ctx context.Context, t types.Telemetry) (Result, error)
	MarkOffline(ctx context.Context, sensor types.Sensor) (Result, error)
}

type pipeline struct {
	sensors  sensors.SensorRegistry
	readings readings.ReadingLog
	alerts   alerts.AlertEngine
}

func New(s sensors.SensorRegistry, r readings.ReadingLog, a alerts.AlertEngine) Pipeline {
	return &pipeline{
		sensors:  s,
		readings: r,
		alerts:   a,
	}
}

// Ingest applies a telemetry sample to its sensor, raises an alert on an upward
// threshold crossing and appends a reading when the level is known.
func (p *pipeline) Ingest(ctx context.Context, t types.Telemetry) (Result, error) {
	sensor, err := p.resolve(ctx, t)
	if err != nil {
		return Result{}, err
	}

	previous, updated, err := p.sensors.ApplyTelemetry(ctx, sensor.ID, sensors.Update{
		Level:   t.Level,
		Battery: t.Battery,
		Signal:  t.Signal,
		Status:  t.Status,
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Sensor: updated}

	before := types.Classify(previous.Level, previous.Thresholds)
	after := types.Classify(updated.Level, updated.Thresholds)

	if severity, ok := alerts.AlertFor(before, after); ok {
		result.AlertID, err = p.raise(ctx, updated, severity, *updated.Level, alerts.MessageFor(severity))
		if err != nil {
			return result, err
		}
	}

	if updated.Level != nil {
		result.ReadingID, err = p.readings.Append(ctx, updated.ID, *updated.Level, updated.Battery, updated.Signal)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// MarkOffline clears the level of a sensor that stopped reporting and raises a warning.
func (p *pipeline) MarkOffline(ctx context.Context, sensor types.Sensor) (Result, error) {
	_, updated, err := p.sensors.ApplyTelemetry(ctx, sensor.ID, sensors.Update{
		Level:   nil,
		Battery: sensor.Battery,
		Signal:  0,
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Sensor: updated}

	result.AlertID, err = p.raise(ctx, updated, types.SeverityWarning, 0, alerts.MessageOffline)

	return result, err
}

func (p *pipeline) raise(ctx context.Context, sensor types.Sensor, severity types.Severity, level float64, message string) (string, error) {
	log := logging.GetFromContext(ctx)

	latest, found, err := p.alerts.LatestActive(ctx, sensor.ID)
	if err != nil {
		return "", err
	}

	if alerts.Suppress(latest, found, severity) {
		log.Debug("alert suppressed, sensor already has an active alert with the same severity", "sensor_id", sensor.ID, "alert_id", latest.ID)
		return "", nil
	}

	id, err := p.alerts.Raise(ctx, sensor.ID, sensor.Name, severity, level, message)
	if err != nil {
		return "", err
	}

	log.Info("alert raised", "sensor_id", sensor.ID, "site_id", sensor.SiteID, "severity", string(severity))

	return id, nil
}

func (p *pipeline) resolve(ctx context.Context, t types.Telemetry) (types.Sensor, error) {
	if t.SensorID != "" {
		return p.sensors.Get(ctx, t.SensorID)
	}

	if strings.TrimSpace(t.SiteID) != "" {
		return p.sensors.GetBySiteID(ctx, t.SiteID)
	}

	return types.Sensor{}, fmt.Errorf("%w: telemetry must identify a sensor or a site", types.ErrValidation)
}
