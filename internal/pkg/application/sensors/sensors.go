package sensors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrSensorNotFound = fmt.Errorf("sensor not found")
var ErrDuplicateSiteID = fmt.Errorf("a sensor with that site id already exists")
var ErrAmbiguousSiteID = fmt.Errorf("more than one sensor shares the site id")

type Registration struct {
	SiteID     string           `json:"siteId"`
	Name       string           `json:"name"`
	Basin      string           `json:"basin"`
	Location   types.Location   `json:"location"`
	Level      *float64         `json:"level"`
	Battery    float64          `json:"battery"`
	Signal     float64          `json:"signal"`
	Status     *types.Status    `json:"status,omitempty"`
	Thresholds types.Thresholds `json:"thresholds"`
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.SiteID) == "" {
		return fmt.Errorf("%w: site id is required", types.ErrValidation)
	}

	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", types.ErrValidation, *r.Status)
	}

	return errors.Join(
		r.Thresholds.Validate(),
		r.Location.Validate(),
		types.ValidateLevel(r.Level),
		types.ValidatePercent("battery", r.Battery),
		types.ValidatePercent("signal", r.Signal),
	)
}

type Update struct {
	Level   *float64
	Battery float64
	Signal  float64
	Status  *types.Status
}

func (u Update) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", types.ErrValidation, *u.Status)
	}

	return errors.Join(
		types.ValidateLevel(u.Level),
		types.ValidatePercent("battery", u.Battery),
		types.ValidatePercent("signal", u.Signal),
	)
}

//go:generate moq -rm -out registry_mock.go . SensorRegistry
type SensorRegistry interface {
	Register(ctx context.Context, r Registration) (string, error)
	ApplyTelemetry(ctx context.Context, sensorID string, u Update) (previous, updated types.Sensor, err error)
	Get(ctx context.Context, sensorID string) (types.Sensor, error)
	GetBySiteID(ctx context.Context, siteID string) (types.Sensor, error)
	List(ctx context.Context, status ...types.Status) ([]types.Sensor, error)
	ListStale(ctx context.Context, updatedBefore time.Time) ([]types.Sensor, error)
}

type SensorStorage interface {
	AddSensor(ctx context.Context, sensor types.Sensor) error
	QuerySensors(ctx context.Context, conditions ...storage.ConditionFunc) ([]types.Sensor, error)
	GetSensor(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error)
	UpdateSensor(ctx context.Context, sensorID string, fn func(*types.Sensor) error) (types.Sensor, types.Sensor, error)
}

type registry struct {
	storage   SensorStorage
	messenger messaging.MsgContext
}

func New(s SensorStorage, m messaging.MsgContext) SensorRegistry {
	return &registry{
		storage:   s,
		messenger: m,
	}
}

// Register provisions a new sensor. Without an explicit status the status is derived from the initial level.
func (reg *registry) Register(ctx context.Context, r Registration) (string, error) {
	err := r.Validate()
	if err != nil {
		return "", err
	}

	sensor := types.Sensor{
		ID:          uuid.NewString(),
		SiteID:      strings.TrimSpace(r.SiteID),
		Name:        r.Name,
		Basin:       r.Basin,
		Location:    r.Location,
		Level:       r.Level,
		Battery:     r.Battery,
		Signal:      r.Signal,
		Status:      types.Classify(r.Level, r.Thresholds),
		Thresholds:  r.Thresholds,
		LastUpdated: time.Now().UTC(),
	}

	if r.Status != nil {
		sensor.Status = *r.Status
		sensor.StatusOverride = *r.Status != types.Classify(r.Level, r.Thresholds)
	}

	err = reg.storage.AddSensor(ctx, sensor)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateSiteID, sensor.SiteID)
	}
	if err != nil {
		return "", err
	}

	reg.publish(ctx, sensor)

	return sensor.ID, nil
}

// ApplyTelemetry overwrites the latest telemetry of a sensor and recomputes its status.
func (reg *registry) ApplyTelemetry(ctx context.Context, sensorID string, u Update) (types.Sensor, types.Sensor, error) {
	err := u.Validate()
	if err != nil {
		return types.Sensor{}, types.Sensor{}, err
	}

	previous, updated, err := reg.storage.UpdateSensor(ctx, sensorID, func(s *types.Sensor) error {
		s.Level = u.Level
		s.Battery = u.Battery
		s.Signal = u.Signal
		s.LastUpdated = time.Now().UTC()

		s.Status = types.Classify(u.Level, s.Thresholds)
		s.StatusOverride = false

		if u.Status != nil && *u.Status != s.Status {
			s.Status = *u.Status
			s.StatusOverride = true
		}

		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		return types.Sensor{}, types.Sensor{}, fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}
	if err != nil {
		return types.Sensor{}, types.Sensor{}, err
	}

	reg.publish(ctx, updated)

	return previous, updated, nil
}

func (reg *registry) Get(ctx context.Context, sensorID string) (types.Sensor, error) {
	sensor, err := reg.storage.GetSensor(ctx, storage.WithID(sensorID))
	if errors.Is(err, storage.ErrNotFound) {
		return types.Sensor{}, fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}
	return sensor, err
}

func (reg *registry) GetBySiteID(ctx context.Context, siteID string) (types.Sensor, error) {
	sensor, err := reg.storage.GetSensor(ctx, storage.WithSiteID(siteID))
	if errors.Is(err, storage.ErrNotFound) {
		return types.Sensor{}, fmt.Errorf("%w: %s", ErrSensorNotFound, siteID)
	}
	if errors.Is(err, storage.ErrTooManyRows) {
		return types.Sensor{}, fmt.Errorf("%w: %s", ErrAmbiguousSiteID, siteID)
	}
	return sensor, err
}

// List returns sensors ordered by site id, optionally limited to the given statuses.
func (reg *registry) List(ctx context.Context, status ...types.Status) ([]types.Sensor, error) {
	for _, s := range status {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", types.ErrValidation, s)
		}
	}

	return reg.storage.QuerySensors(ctx, storage.WithSensorStatus(status...))
}

// ListStale returns sensors that still report a level but have not been updated since updatedBefore.
func (reg *registry) ListStale(ctx context.Context, updatedBefore time.Time) ([]types.Sensor, error) {
	return reg.storage.QuerySensors(ctx,
		storage.WithSensorStatus(types.StatusNormal, types.StatusWarning, types.StatusDanger),
		storage.WithUpdatedBefore(updatedBefore),
	)
}

func (reg *registry) publish(ctx context.Context, sensor types.Sensor) {
	err := reg.messenger.PublishOnTopic(ctx, &types.SensorUpdated{
		Sensor:    sensor,
		Timestamp: sensor.LastUpdated,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish sensor update", "sensor_id", sensor.ID, "err", err.Error())
	}
}
