package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func testSetup(t *testing.T) (context.Context, *is.I, *Storage) {
	is := is.New(t)
	ctx := context.Background()

	s, err := New(ctx, NewSQLiteConnector(ctx))
	is.NoErr(err)
	is.NoErr(s.Initialize(ctx))

	t.Cleanup(s.Close)

	return ctx, is, s
}

func newSensor(siteID string, level *float64) types.Sensor {
	th := types.Thresholds{Normal: 45.0, Warning: 48.0, Danger: 50.0}
	return types.Sensor{
		ID:          uuid.NewString(),
		SiteID:      siteID,
		Name:        "name-" + siteID,
		Basin:       "Cauvery",
		Location:    types.Location{Latitude: 11.7, Longitude: 77.8},
		Level:       level,
		Battery:     76,
		Signal:      85,
		Status:      types.Classify(level, th),
		Thresholds:  th,
		LastUpdated: time.Now().UTC(),
	}
}

func TestAddAndGetSensor(t *testing.T) {
	ctx, is, s := testSetup(t)

	level := 48.2
	sensor := newSensor("CWC-002", &level)
	is.NoErr(s.AddSensor(ctx, sensor))

	fromDb, err := s.GetSensor(ctx, WithSiteID("CWC-002"))
	is.NoErr(err)
	is.Equal(fromDb.ID, sensor.ID)
	is.Equal(*fromDb.Level, 48.2)
	is.Equal(fromDb.Status, types.StatusWarning)
	is.Equal(fromDb.Thresholds, sensor.Thresholds)
	is.Equal(fromDb.LastUpdated.UnixMilli(), sensor.LastUpdated.UnixMilli())
}

func TestAddSensorWithExistingSiteIDFails(t *testing.T) {
	ctx, is, s := testSetup(t)

	is.NoErr(s.AddSensor(ctx, newSensor("CWC-001", nil)))

	err := s.AddSensor(ctx, newSensor("CWC-001", nil))
	is.True(errors.Is(err, ErrAlreadyExists))
}

func TestGetUnknownSensorReturnsNotFound(t *testing.T) {
	ctx, is, s := testSetup(t)

	_, err := s.GetSensor(ctx, WithSiteID("nosuchsite"))
	is.True(errors.Is(err, ErrNotFound))
}

func TestQuerySensorsWithStatus(t *testing.T) {
	ctx, is, s := testSetup(t)

	low, high := 30.0, 55.0
	is.NoErr(s.AddSensor(ctx, newSensor("CWC-003", &high)))
	is.NoErr(s.AddSensor(ctx, newSensor("CWC-001", &low)))
	is.NoErr(s.AddSensor(ctx, newSensor("CWC-004", nil)))

	all, err := s.QuerySensors(ctx)
	is.NoErr(err)
	is.Equal(len(all), 3)
	is.Equal(all[0].SiteID, "CWC-001")
	is.Equal(all[2].SiteID, "CWC-004")

	offline, err := s.QuerySensors(ctx, WithSensorStatus(types.StatusOffline))
	is.NoErr(err)
	is.Equal(len(offline), 1)
	is.Equal(offline[0].Level, nil)

	counts, err := s.CountSensorsByStatus(ctx)
	is.NoErr(err)
	is.Equal(counts[types.StatusDanger], 1)
	is.Equal(counts[types.StatusNormal], 1)
	is.Equal(counts[types.StatusOffline], 1)
}

func TestUpdateSensorReturnsPreviousAndUpdated(t *testing.T) {
	ctx, is, s := testSetup(t)

	level := 40.0
	sensor := newSensor("CWC-005", &level)
	is.NoErr(s.AddSensor(ctx, sensor))

	previous, updated, err := s.UpdateSensor(ctx, sensor.ID, func(sn *types.Sensor) error {
		sn.Level = nil
		sn.Status = types.StatusOffline
		return nil
	})
	is.NoErr(err)
	is.Equal(*previous.Level, 40.0)
	is.Equal(updated.Level, nil)

	fromDb, err := s.GetSensor(ctx, WithID(sensor.ID))
	is.NoErr(err)
	is.Equal(fromDb.Level, nil)
	is.Equal(fromDb.Status, types.StatusOffline)

	_, _, err = s.UpdateSensor(ctx, "nosuchsensor", func(*types.Sensor) error { return nil })
	is.True(errors.Is(err, ErrNotFound))
}

func TestQueryReadingsWithinWindowNewestFirst(t *testing.T) {
	ctx, is, s := testSetup(t)

	now := time.Now().UTC()
	sensorID := uuid.NewString()

	for i := range 5 {
		is.NoErr(s.AddReading(ctx, types.Reading{
			ID:        uuid.NewString(),
			SensorID:  sensorID,
			Level:     float64(40 + i),
			Timestamp: now.Add(-time.Duration(i) * 10 * time.Hour),
		}))
	}

	readings, err := s.QueryReadings(ctx, WithSensorID(sensorID), WithTimeWindow(now.Add(-24*time.Hour), now))
	is.NoErr(err)
	is.Equal(len(readings), 3)
	is.Equal(readings[0].Level, 40.0)
	is.True(readings[0].Timestamp.After(readings[1].Timestamp))

	// the lower bound is exclusive
	readings, err = s.QueryReadings(ctx, WithSensorID(sensorID), WithTimeWindow(now.Add(-20*time.Hour), now))
	is.NoErr(err)
	is.Equal(len(readings), 2)

	readings, err = s.QueryReadings(ctx, WithSensorID("unknown"), WithTimeWindow(now.Add(-24*time.Hour), now))
	is.NoErr(err)
	is.Equal(len(readings), 0)
}

func TestAcknowledgeAlertOnlyOnce(t *testing.T) {
	ctx, is, s := testSetup(t)

	created := time.Now().UTC().Add(-time.Minute)
	a := types.Alert{
		ID:        uuid.NewString(),
		SensorID:  uuid.NewString(),
		SiteName:  "Mettur Dam",
		Severity:  types.SeverityWarning,
		Level:     48.2,
		Message:   "Water level approaching warning threshold",
		Status:    types.AlertStatusActive,
		Timestamp: created,
	}
	is.NoErr(s.AddAlert(ctx, a))

	first := time.Now().UTC()
	acked, changed, err := s.AcknowledgeAlert(ctx, a.ID, first)
	is.NoErr(err)
	is.True(changed)
	is.Equal(acked.Status, types.AlertStatusAcknowledged)
	is.Equal(acked.AcknowledgedAt.UnixMilli(), first.UnixMilli())

	again, changed, err := s.AcknowledgeAlert(ctx, a.ID, first.Add(time.Hour))
	is.NoErr(err)
	is.True(!changed)
	is.Equal(again.AcknowledgedAt.UnixMilli(), first.UnixMilli())

	_, _, err = s.AcknowledgeAlert(ctx, "nosuchalert", first)
	is.True(errors.Is(err, ErrNotFound))
}

func TestQueryAlertsWithStatusAndSeverity(t *testing.T) {
	ctx, is, s := testSetup(t)

	now := time.Now().UTC()
	add := func(severity types.Severity, status types.AlertStatus, age time.Duration) {
		is.NoErr(s.AddAlert(ctx, types.Alert{
			ID:        uuid.NewString(),
			SensorID:  "sensor",
			Severity:  severity,
			Status:    status,
			Timestamp: now.Add(-age),
		}))
	}

	add(types.SeverityWarning, types.AlertStatusActive, 3*time.Minute)
	add(types.SeverityDanger, types.AlertStatusActive, 2*time.Minute)
	add(types.SeverityWarning, types.AlertStatusAcknowledged, 1*time.Minute)

	all, err := s.QueryAlerts(ctx)
	is.NoErr(err)
	is.Equal(len(all), 3)
	is.True(all[0].Timestamp.After(all[1].Timestamp))
	is.True(all[1].Timestamp.After(all[2].Timestamp))

	activeWarnings, err := s.QueryAlerts(ctx, WithAlertStatus(types.AlertStatusActive), WithSeverity(types.SeverityWarning))
	is.NoErr(err)
	is.Equal(len(activeWarnings), 1)

	latest, err := s.GetAlert(ctx, WithSensorID("sensor"), WithAlertStatus(types.AlertStatusActive))
	is.NoErr(err)
	is.Equal(latest.Severity, types.SeverityDanger)

	count, err := s.CountAlerts(ctx, WithAlertStatus(types.AlertStatusActive))
	is.NoErr(err)
	is.Equal(count, 2)
}

func TestResetRemovesEverything(t *testing.T) {
	ctx, is, s := testSetup(t)

	sensor := newSensor("CWC-001", nil)
	is.NoErr(s.AddSensor(ctx, sensor))
	is.NoErr(s.AddReading(ctx, types.Reading{ID: uuid.NewString(), SensorID: sensor.ID, Timestamp: time.Now()}))
	is.NoErr(s.AddAlert(ctx, types.Alert{ID: uuid.NewString(), SensorID: sensor.ID, Status: types.AlertStatusActive, Severity: types.SeverityWarning, Timestamp: time.Now()}))

	is.NoErr(s.Reset(ctx))

	sensors, _ := s.QuerySensors(ctx)
	readings, _ := s.QueryReadings(ctx)
	alerts, _ := s.QueryAlerts(ctx)

	is.Equal(len(sensors), 0)
	is.Equal(len(readings), 0)
	is.Equal(len(alerts), 0)
}

func TestBlankIDsMatchNothing(t *testing.T) {
	ctx, is, s := testSetup(t)

	sensor := newSensor("CWC-002", nil)
	is.NoErr(s.AddSensor(ctx, sensor))
	is.NoErr(s.AddReading(ctx, types.Reading{ID: uuid.NewString(), SensorID: sensor.ID, Timestamp: time.Now()}))
	is.NoErr(s.AddAlert(ctx, types.Alert{ID: uuid.NewString(), SensorID: sensor.ID, Status: types.AlertStatusActive, Severity: types.SeverityWarning, Timestamp: time.Now()}))

	_, err := s.GetSensor(ctx, WithID(""))
	is.True(errors.Is(err, ErrNotFound))

	_, err = s.GetSensor(ctx, WithSiteID("  "))
	is.True(errors.Is(err, ErrNotFound))

	readings, err := s.QueryReadings(ctx, WithSensorID(""))
	is.NoErr(err)
	is.Equal(len(readings), 0)

	_, err = s.GetAlert(ctx, WithSensorID(""), WithAlertStatus(types.AlertStatusActive))
	is.True(errors.Is(err, ErrNotFound))
}

func TestLatestAlertWithinSameMillisecond(t *testing.T) {
	ctx, is, s := testSetup(t)

	ts := time.Now().UTC()

	for range 20 {
		sensorID := uuid.NewString()
		for _, severity := range []types.Severity{types.SeverityWarning, types.SeverityDanger} {
			is.NoErr(s.AddAlert(ctx, types.Alert{
				ID:        uuid.NewString(),
				SensorID:  sensorID,
				Severity:  severity,
				Status:    types.AlertStatusActive,
				Timestamp: ts,
			}))
		}

		latest, err := s.GetAlert(ctx, WithSensorID(sensorID), WithAlertStatus(types.AlertStatusActive))
		is.NoErr(err)
		is.Equal(latest.Severity, types.SeverityDanger)

		alerts, err := s.QueryAlerts(ctx, WithSensorID(sensorID))
		is.NoErr(err)
		is.Equal(alerts[0].Severity, types.SeverityDanger)
		is.Equal(alerts[1].Severity, types.SeverityWarning)
	}
}

func TestReadingsWithinSameMillisecondNewestFirst(t *testing.T) {
	ctx, is, s := testSetup(t)

	ts := time.Now().UTC()
	sensorID := uuid.NewString()

	for i := range 5 {
		is.NoErr(s.AddReading(ctx, types.Reading{ID: uuid.NewString(), SensorID: sensorID, Level: float64(i), Timestamp: ts}))
	}

	readings, err := s.QueryReadings(ctx, WithSensorID(sensorID))
	is.NoErr(err)
	is.Equal(len(readings), 5)
	is.Equal(readings[0].Level, 4.0)
	is.Equal(readings[4].Level, 0.0)
}
