package alerts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrAlertNotFound = fmt.Errorf("alert not found")

//go:generate moq -rm -out alertengine_mock.go . AlertEngine
type AlertEngine interface {
	Raise(ctx context.Context, sensorID, siteName string, severity types.Severity, level float64, message string) (string, error)
	Acknowledge(ctx context.Context, alertID string) (types.Alert, error)
	Get(ctx context.Context, alertID string) (types.Alert, error)
	List(ctx context.Context, status types.AlertStatus, severity types.Severity) ([]types.Alert, error)
	LatestActive(ctx context.Context, sensorID string) (types.Alert, bool, error)
	CountActive(ctx context.Context) (int, error)
}

type AlertStorage interface {
	AddAlert(ctx context.Context, a types.Alert) error
	QueryAlerts(ctx context.Context, conditions ...storage.ConditionFunc) ([]types.Alert, error)
	GetAlert(ctx context.Context, conditions ...storage.ConditionFunc) (types.Alert, error)
	CountAlerts(ctx context.Context, conditions ...storage.ConditionFunc) (int, error)
	AcknowledgeAlert(ctx context.Context, alertID string, at time.Time) (types.Alert, bool, error)
}

type alertSvc struct {
	storage   AlertStorage
	messenger messaging.MsgContext
}

func New(s AlertStorage, m messaging.MsgContext) AlertEngine {
	return &alertSvc{
		storage:   s,
		messenger: m,
	}
}

// Raise always records a new active alert. Deduplication is up to the caller.
func (svc *alertSvc) Raise(ctx context.Context, sensorID, siteName string, severity types.Severity, level float64, message string) (string, error) {
	if sensorID == "" {
		return "", fmt.Errorf("%w: sensor id is required", types.ErrValidation)
	}
	if !severity.Valid() {
		return "", fmt.Errorf("%w: unknown severity %q", types.ErrValidation, severity)
	}
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return "", fmt.Errorf("%w: level is not a number", types.ErrValidation)
	}

	a := types.Alert{
		ID:        uuid.NewString(),
		SensorID:  sensorID,
		SiteName:  siteName,
		Severity:  severity,
		Level:     level,
		Message:   message,
		Status:    types.AlertStatusActive,
		Timestamp: time.Now().UTC(),
	}

	err := svc.storage.AddAlert(ctx, a)
	if err != nil {
		return "", err
	}

	err = svc.messenger.PublishOnTopic(ctx, &types.AlertRaised{Alert: a, Timestamp: a.Timestamp})
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish raised alert", "alert_id", a.ID, "err", err.Error())
	}

	return a.ID, nil
}

// Acknowledge moves an alert from Active to Acknowledged. Acknowledging twice keeps the first acknowledgment.
func (svc *alertSvc) Acknowledge(ctx context.Context, alertID string) (types.Alert, error) {
	a, changed, err := svc.storage.AcknowledgeAlert(ctx, alertID, time.Now().UTC())
	if errors.Is(err, storage.ErrNotFound) {
		return types.Alert{}, fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
	}
	if err != nil {
		return types.Alert{}, err
	}

	if !changed {
		return a, nil
	}

	err = svc.messenger.PublishOnTopic(ctx, &types.AlertAcknowledged{Alert: a, Timestamp: *a.AcknowledgedAt})
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish acknowledged alert", "alert_id", a.ID, "err", err.Error())
	}

	return a, nil
}

func (svc *alertSvc) Get(ctx context.Context, alertID string) (types.Alert, error) {
	a, err := svc.storage.GetAlert(ctx, storage.WithID(alertID))
	if errors.Is(err, storage.ErrNotFound) {
		return types.Alert{}, fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
	}
	return a, err
}

// List returns alerts newest first. Empty filters match every alert.
func (svc *alertSvc) List(ctx context.Context, status types.AlertStatus, severity types.Severity) ([]types.Alert, error) {
	conditions := []storage.ConditionFunc{storage.WithSortDesc(true)}

	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown alert status %q", types.ErrValidation, status)
		}
		conditions = append(conditions, storage.WithAlertStatus(status))
	}

	if severity != "" {
		if !severity.Valid() {
			return nil, fmt.Errorf("%w: unknown severity %q", types.ErrValidation, severity)
		}
		conditions = append(conditions, storage.WithSeverity(severity))
	}

	return svc.storage.QueryAlerts(ctx, conditions...)
}

// LatestActive returns the most recent active alert of a sensor, if there is one.
func (svc *alertSvc) LatestActive(ctx context.Context, sensorID string) (types.Alert, bool, error) {
	a, err := svc.storage.GetAlert(ctx, storage.WithSensorID(sensorID), storage.WithAlertStatus(types.AlertStatusActive))
	if errors.Is(err, storage.ErrNotFound) {
		return types.Alert{}, false, nil
	}
	if err != nil {
		return types.Alert{}, false, err
	}
	return a, true, nil
}

func (svc *alertSvc) CountActive(ctx context.Context) (int, error) {
	return svc.storage.CountAlerts(ctx, storage.WithAlertStatus(types.AlertStatusActive))
}
