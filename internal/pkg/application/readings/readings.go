package readings

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

//go:generate moq -rm -out readinglog_mock.go . ReadingLog
type ReadingLog interface {
	Append(ctx context.Context, sensorID string, level, battery, signal float64) (string, error)
	Query(ctx context.Context, sensorID string, timeRange types.TimeRange) ([]types.Reading, error)
}

type ReadingStorage interface {
	AddReading(ctx context.Context, r types.Reading) error
	QueryReadings(ctx context.Context, conditions ...storage.ConditionFunc) ([]types.Reading, error)
}

type readingLog struct {
	storage   ReadingStorage
	messenger messaging.MsgContext
	now       func() time.Time
}

func New(s ReadingStorage, m messaging.MsgContext) ReadingLog {
	return &readingLog{
		storage:   s,
		messenger: m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Append stores a reading stamped with the time of ingestion.
func (rl *readingLog) Append(ctx context.Context, sensorID string, level, battery, signal float64) (string, error) {
	if sensorID == "" {
		return "", fmt.Errorf("%w: sensor id is required", types.ErrValidation)
	}

	if math.IsNaN(level) || math.IsInf(level, 0) {
		return "", fmt.Errorf("%w: level is not a number", types.ErrValidation)
	}

	err := errors.Join(
		types.ValidatePercent("battery", battery),
		types.ValidatePercent("signal", signal),
	)
	if err != nil {
		return "", err
	}

	r := types.Reading{
		ID:        uuid.NewString(),
		SensorID:  sensorID,
		Level:     level,
		Battery:   battery,
		Signal:    signal,
		Timestamp: rl.now(),
	}

	err = rl.storage.AddReading(ctx, r)
	if err != nil {
		return "", err
	}

	err = rl.messenger.PublishOnTopic(ctx, &types.ReadingAdded{Reading: r, Timestamp: r.Timestamp})
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish reading", "sensor_id", sensorID, "err", err.Error())
	}

	return r.ID, nil
}

// Query returns the readings of a sensor within the time range, newest first.
func (rl *readingLog) Query(ctx context.Context, sensorID string, timeRange types.TimeRange) ([]types.Reading, error) {
	from, to := timeRange.Window(rl.now())

	return rl.storage.QueryReadings(ctx,
		storage.WithSensorID(sensorID),
		storage.WithTimeWindow(from, to),
		storage.WithSortDesc(true),
	)
}
