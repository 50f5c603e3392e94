package sensors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

var lastPublished messaging.TopicMessage

func testSetup(t *testing.T) (context.Context, *is.I, SensorRegistry, *messaging.MsgContextMock) {
	is := is.New(t)
	ctx := context.Background()

	s, err := storage.New(ctx, storage.NewSQLiteConnector(ctx))
	is.NoErr(err)
	is.NoErr(s.Initialize(ctx))
	t.Cleanup(s.Close)

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			lastPublished = message
			return nil
		},
	}

	return ctx, is, New(s, m), m
}

func mettur(level *float64) Registration {
	return Registration{
		SiteID:     "CWC-002",
		Name:       "Mettur Dam",
		Basin:      "Cauvery",
		Location:   types.Location{Latitude: 11.79, Longitude: 77.8},
		Level:      level,
		Battery:    76,
		Signal:     85,
		Thresholds: types.Thresholds{Normal: 45.0, Warning: 48.0, Danger: 50.0},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestRegisterDerivesStatusFromLevel(t *testing.T) {
	ctx, is, reg, m := testSetup(t)

	id, err := reg.Register(ctx, mettur(ptr(48.2)))
	is.NoErr(err)
	is.True(id != "")

	sensor, err := reg.GetBySiteID(ctx, "CWC-002")
	is.NoErr(err)
	is.Equal(sensor.ID, id)
	is.Equal(sensor.Status, types.StatusWarning)
	is.True(!sensor.StatusOverride)

	is.Equal(len(m.PublishOnTopicCalls()), 1)

	msg, ok := lastPublished.(*types.SensorUpdated)
	is.True(ok)
	is.Equal(msg.TopicName(), types.TopicSensorUpdated)
	is.Equal(msg.Sensor.SiteID, "CWC-002")
}

func TestRegisterWithExplicitStatusIsStoredAsOverride(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	r := mettur(ptr(30.0))
	r.Status = ptr(types.StatusOffline)

	id, err := reg.Register(ctx, r)
	is.NoErr(err)

	sensor, err := reg.Get(ctx, id)
	is.NoErr(err)
	is.Equal(sensor.Status, types.StatusOffline)
	is.True(sensor.StatusOverride)
}

func TestRegisterDuplicateSiteIDFails(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	_, err := reg.Register(ctx, mettur(nil))
	is.NoErr(err)

	_, err = reg.Register(ctx, mettur(nil))
	is.True(errors.Is(err, ErrDuplicateSiteID))
}

func TestRegisterValidation(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	r := mettur(nil)
	r.Thresholds = types.Thresholds{Normal: 50, Warning: 48, Danger: 45}
	_, err := reg.Register(ctx, r)
	is.True(errors.Is(err, types.ErrValidation))

	r = mettur(nil)
	r.Location.Latitude = 91
	_, err = reg.Register(ctx, r)
	is.True(errors.Is(err, types.ErrValidation))

	r = mettur(nil)
	r.Battery = 101
	_, err = reg.Register(ctx, r)
	is.True(errors.Is(err, types.ErrValidation))

	r = mettur(nil)
	r.SiteID = "  "
	_, err = reg.Register(ctx, r)
	is.True(errors.Is(err, types.ErrValidation))
}

func TestApplyTelemetry(t *testing.T) {
	ctx, is, reg, m := testSetup(t)

	id, err := reg.Register(ctx, mettur(ptr(40.0)))
	is.NoErr(err)

	before := time.Now().UTC().Add(-time.Second)

	previous, updated, err := reg.ApplyTelemetry(ctx, id, Update{Level: ptr(50.0), Battery: 70, Signal: 80})
	is.NoErr(err)
	is.Equal(previous.Status, types.StatusNormal)
	is.Equal(updated.Status, types.StatusDanger)
	is.Equal(updated.Battery, 70.0)
	is.True(updated.LastUpdated.After(before))

	_, updated, err = reg.ApplyTelemetry(ctx, id, Update{Level: nil, Battery: 70, Signal: 0})
	is.NoErr(err)
	is.Equal(updated.Status, types.StatusOffline)
	is.Equal(updated.Level, nil)

	is.Equal(len(m.PublishOnTopicCalls()), 3)
}

func TestApplyTelemetryWithStatusOverride(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	id, err := reg.Register(ctx, mettur(ptr(40.0)))
	is.NoErr(err)

	_, updated, err := reg.ApplyTelemetry(ctx, id, Update{Level: ptr(41.0), Battery: 70, Signal: 80, Status: ptr(types.StatusWarning)})
	is.NoErr(err)
	is.Equal(updated.Status, types.StatusWarning)
	is.True(updated.StatusOverride)

	// an override matching the derived status is not an override
	_, updated, err = reg.ApplyTelemetry(ctx, id, Update{Level: ptr(41.0), Battery: 70, Signal: 80, Status: ptr(types.StatusNormal)})
	is.NoErr(err)
	is.True(!updated.StatusOverride)
}

func TestApplyTelemetryToUnknownSensor(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	_, _, err := reg.ApplyTelemetry(ctx, "unknown", Update{Level: ptr(1.0)})
	is.True(errors.Is(err, ErrSensorNotFound))

	_, _, err = reg.ApplyTelemetry(ctx, "unknown", Update{Battery: 120})
	is.True(errors.Is(err, types.ErrValidation))
}

func TestGetBySiteIDNotFound(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	_, err := reg.GetBySiteID(ctx, "CWC-999")
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestGetWithBlankIDNotFound(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	_, err := reg.Register(ctx, mettur(ptr(44.0)))
	is.NoErr(err)

	r := mettur(nil)
	r.SiteID = "CWC-001"
	_, err = reg.Register(ctx, r)
	is.NoErr(err)

	_, err = reg.Get(ctx, "")
	is.True(errors.Is(err, ErrSensorNotFound))

	_, err = reg.GetBySiteID(ctx, "")
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestGetBySiteIDAmbiguous(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s := &storageStub{
		getSensor: func() (types.Sensor, error) { return types.Sensor{}, storage.ErrTooManyRows },
	}

	_, err := New(s, &messaging.MsgContextMock{}).GetBySiteID(ctx, "CWC-001")
	is.True(errors.Is(err, ErrAmbiguousSiteID))
}

func TestListWithStatusFilter(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	for siteID, level := range map[string]*float64{"CWC-003": ptr(55.0), "CWC-001": ptr(30.0), "CWC-002": nil} {
		r := mettur(level)
		r.SiteID = siteID
		_, err := reg.Register(ctx, r)
		is.NoErr(err)
	}

	all, err := reg.List(ctx)
	is.NoErr(err)
	is.Equal(len(all), 3)
	is.Equal(all[0].SiteID, "CWC-001")
	is.Equal(all[1].SiteID, "CWC-002")
	is.Equal(all[2].SiteID, "CWC-003")

	danger, err := reg.List(ctx, types.StatusDanger)
	is.NoErr(err)
	is.Equal(len(danger), 1)
	is.Equal(danger[0].SiteID, "CWC-003")

	_, err = reg.List(ctx, types.Status("Flooded"))
	is.True(errors.Is(err, types.ErrValidation))
}

func TestListStale(t *testing.T) {
	ctx, is, reg, _ := testSetup(t)

	_, err := reg.Register(ctx, mettur(ptr(40.0)))
	is.NoErr(err)

	r := mettur(nil)
	r.SiteID = "CWC-004"
	_, err = reg.Register(ctx, r)
	is.NoErr(err)

	stale, err := reg.ListStale(ctx, time.Now().UTC().Add(time.Minute))
	is.NoErr(err)
	is.Equal(len(stale), 1)
	is.Equal(stale[0].SiteID, "CWC-002")

	stale, err = reg.ListStale(ctx, time.Now().UTC().Add(-time.Hour))
	is.NoErr(err)
	is.Equal(len(stale), 0)
}

type storageStub struct {
	SensorStorage
	getSensor func() (types.Sensor, error)
}

func (s *storageStub) GetSensor(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
	return s.getSensor()
}
