package readings

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func testSetup(t *testing.T) (context.Context, *is.I, *readingLog, *messaging.MsgContextMock) {
	is := is.New(t)
	ctx := context.Background()

	s, err := storage.New(ctx, storage.NewSQLiteConnector(ctx))
	is.NoErr(err)
	is.NoErr(s.Initialize(ctx))
	t.Cleanup(s.Close)

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return ctx, is, New(s, m).(*readingLog), m
}

// appendAt appends a reading as if it was ingested at the given time.
func appendAt(ctx context.Context, is *is.I, rl *readingLog, at time.Time, sensorID string, level float64) {
	rl.now = func() time.Time { return at }
	_, err := rl.Append(ctx, sensorID, level, 80, 90)
	is.NoErr(err)
}

func TestAppendPublishesReading(t *testing.T) {
	ctx, is, rl, m := testSetup(t)

	id, err := rl.Append(ctx, "sensor-1", 48.2, 76, 85)
	is.NoErr(err)
	is.True(id != "")
	is.Equal(len(m.PublishOnTopicCalls()), 1)
}

func TestAppendValidation(t *testing.T) {
	ctx, is, rl, m := testSetup(t)

	_, err := rl.Append(ctx, "sensor-1", math.NaN(), 76, 85)
	is.True(errors.Is(err, types.ErrValidation))

	_, err = rl.Append(ctx, "sensor-1", 48.2, -1, 85)
	is.True(errors.Is(err, types.ErrValidation))

	_, err = rl.Append(ctx, "sensor-1", 48.2, 76, 100.5)
	is.True(errors.Is(err, types.ErrValidation))

	_, err = rl.Append(ctx, "", 48.2, 76, 85)
	is.True(errors.Is(err, types.ErrValidation))

	is.Equal(len(m.PublishOnTopicCalls()), 0)
}

func TestQueryTimeRanges(t *testing.T) {
	ctx, is, rl, _ := testSetup(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	appendAt(ctx, is, rl, now.Add(-1*time.Hour), "sensor-1", 46.0)
	appendAt(ctx, is, rl, now.Add(-23*time.Hour), "sensor-1", 45.5)
	appendAt(ctx, is, rl, now.Add(-3*24*time.Hour), "sensor-1", 44.0)
	appendAt(ctx, is, rl, now.Add(-20*24*time.Hour), "sensor-1", 41.0)
	appendAt(ctx, is, rl, now.Add(-40*24*time.Hour), "sensor-1", 38.0)
	appendAt(ctx, is, rl, now.Add(-2*time.Hour), "sensor-2", 12.0)

	rl.now = func() time.Time { return now }

	day, err := rl.Query(ctx, "sensor-1", types.Last24Hours)
	is.NoErr(err)
	is.Equal(len(day), 2)

	week, err := rl.Query(ctx, "sensor-1", types.Last7Days)
	is.NoErr(err)
	is.Equal(len(week), 3)

	month, err := rl.Query(ctx, "sensor-1", types.Last30Days)
	is.NoErr(err)
	is.Equal(len(month), 4)

	ids := map[string]bool{}
	for i, r := range week {
		ids[r.ID] = true
		if i > 0 {
			is.True(week[i-1].Timestamp.After(r.Timestamp)) // newest first
		}
	}
	for _, r := range day {
		is.True(ids[r.ID]) // every reading of the last day is part of the last week
	}
}

func TestQueryWindowBounds(t *testing.T) {
	ctx, is, rl, _ := testSetup(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	appendAt(ctx, is, rl, now.Add(-24*time.Hour), "sensor-1", 40.0)
	appendAt(ctx, is, rl, now, "sensor-1", 41.0)

	rl.now = func() time.Time { return now }

	readings, err := rl.Query(ctx, "sensor-1", types.ParseTimeRange("unknown"))
	is.NoErr(err)
	is.Equal(len(readings), 1)
	is.Equal(readings[0].Level, 41.0)
}

func TestQueryUnknownSensorIsEmpty(t *testing.T) {
	ctx, is, rl, _ := testSetup(t)

	readings, err := rl.Query(ctx, "no-such-sensor", types.Last30Days)
	is.NoErr(err)
	is.Equal(len(readings), 0)
}

func TestQueryBlankSensorIDIsEmpty(t *testing.T) {
	ctx, is, rl, _ := testSetup(t)

	_, err := rl.Append(ctx, "sensor-1", 44.0, 76, 85)
	is.NoErr(err)
	_, err = rl.Append(ctx, "sensor-2", 46.0, 76, 85)
	is.NoErr(err)

	readings, err := rl.Query(ctx, "", types.Last24Hours)
	is.NoErr(err)
	is.Equal(len(readings), 0)
}
