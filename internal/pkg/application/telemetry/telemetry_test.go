package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/diwise/iot-water-level/internal/pkg/application/alerts"
	"github.com/diwise/iot-water-level/internal/pkg/application/readings"
	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

type testEnv struct {
	sensors  sensors.SensorRegistry
	readings readings.ReadingLog
	alerts   alerts.AlertEngine
	pipeline Pipeline
}

func testSetup(t *testing.T) (context.Context, *is.I, testEnv) {
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

	env := testEnv{
		sensors:  sensors.New(s, m),
		readings: readings.New(s, m),
		alerts:   alerts.New(s, m),
	}
	env.pipeline = New(env.sensors, env.readings, env.alerts)

	return ctx, is, env
}

func ptr[T any](v T) *T {
	return &v
}

func register(ctx context.Context, is *is.I, env testEnv, siteID string, level *float64) string {
	id, err := env.sensors.Register(ctx, sensors.Registration{
		SiteID:     siteID,
		Name:       "Mettur Dam",
		Basin:      "Cauvery",
		Location:   types.Location{Latitude: 11.79, Longitude: 77.8},
		Level:      level,
		Battery:    76,
		Signal:     85,
		Thresholds: types.Thresholds{Normal: 45.0, Warning: 48.0, Danger: 50.0},
	})
	is.NoErr(err)
	return id
}

func TestWarningScenario(t *testing.T) {
	ctx, is, env := testSetup(t)

	register(ctx, is, env, "CWC-002", ptr(44.0))

	result, err := env.pipeline.Ingest(ctx, types.Telemetry{SiteID: "CWC-002", Level: ptr(48.2), Battery: 76, Signal: 85})
	is.NoErr(err)
	is.Equal(result.Sensor.Status, types.StatusWarning)
	is.True(result.AlertID != "")
	is.True(result.ReadingID != "")

	warnings, err := env.alerts.List(ctx, "", types.SeverityWarning)
	is.NoErr(err)
	is.Equal(len(warnings), 1)
	is.Equal(warnings[0].Level, 48.2)
	is.Equal(warnings[0].Message, alerts.MessageWarning)
	is.Equal(warnings[0].SiteName, "Mettur Dam")

	_, err = env.alerts.Acknowledge(ctx, warnings[0].ID)
	is.NoErr(err)

	active, err := env.alerts.List(ctx, types.AlertStatusActive, "")
	is.NoErr(err)
	is.Equal(len(active), 0)
}

func TestSustainedBreachDoesNotRepeatAlerts(t *testing.T) {
	ctx, is, env := testSetup(t)

	id := register(ctx, is, env, "CWC-002", ptr(44.0))

	for _, level := range []float64{48.2, 48.9, 49.1} {
		_, err := env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: ptr(level), Battery: 76, Signal: 85})
		is.NoErr(err)
	}

	all, err := env.alerts.List(ctx, "", "")
	is.NoErr(err)
	is.Equal(len(all), 1)

	// upward into danger raises a new alert
	result, err := env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: ptr(50.5), Battery: 76, Signal: 85})
	is.NoErr(err)
	is.True(result.AlertID != "")

	// downward never raises
	result, err = env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: ptr(47.0), Battery: 76, Signal: 85})
	is.NoErr(err)
	is.Equal(result.AlertID, "")

	all, err = env.alerts.List(ctx, "", "")
	is.NoErr(err)
	is.Equal(len(all), 2)

	danger, err := env.alerts.List(ctx, "", types.SeverityDanger)
	is.NoErr(err)
	is.Equal(len(danger), 1)
	is.Equal(danger[0].Level, 50.5)

	r, err := env.readings.Query(ctx, id, types.Last24Hours)
	is.NoErr(err)
	is.Equal(len(r), 5)
}

func TestRecrossingWithActiveAlertOfSameSeverityIsSuppressed(t *testing.T) {
	ctx, is, env := testSetup(t)

	id := register(ctx, is, env, "CWC-002", ptr(44.0))

	for _, level := range []float64{48.5, 46.0, 48.5} {
		_, err := env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: ptr(level), Battery: 76, Signal: 85})
		is.NoErr(err)
	}

	all, err := env.alerts.List(ctx, "", "")
	is.NoErr(err)
	is.Equal(len(all), 1)
}

func TestOfflineTelemetryKeepsHistory(t *testing.T) {
	ctx, is, env := testSetup(t)

	id := register(ctx, is, env, "CWC-007", ptr(30.0))

	for _, level := range []float64{31.0, 32.5} {
		_, err := env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: ptr(level), Battery: 76, Signal: 85})
		is.NoErr(err)
	}

	before, err := env.readings.Query(ctx, id, types.Last24Hours)
	is.NoErr(err)

	result, err := env.pipeline.Ingest(ctx, types.Telemetry{SensorID: id, Level: nil, Battery: 76, Signal: 0})
	is.NoErr(err)
	is.Equal(result.Sensor.Status, types.StatusOffline)
	is.Equal(result.ReadingID, "")
	is.Equal(result.AlertID, "")

	after, err := env.readings.Query(ctx, id, types.Last24Hours)
	is.NoErr(err)
	is.Equal(after, before)
}

func TestMarkOffline(t *testing.T) {
	ctx, is, env := testSetup(t)

	id := register(ctx, is, env, "CWC-003", ptr(30.0))
	sensor, err := env.sensors.Get(ctx, id)
	is.NoErr(err)

	result, err := env.pipeline.MarkOffline(ctx, sensor)
	is.NoErr(err)
	is.Equal(result.Sensor.Status, types.StatusOffline)
	is.True(result.AlertID != "")

	a, err := env.alerts.Get(ctx, result.AlertID)
	is.NoErr(err)
	is.Equal(a.Severity, types.SeverityWarning)
	is.Equal(a.Message, alerts.MessageOffline)

	// a second pass does not repeat the alert
	result, err = env.pipeline.MarkOffline(ctx, result.Sensor)
	is.NoErr(err)
	is.Equal(result.AlertID, "")
}

func TestIngestUnknownSensor(t *testing.T) {
	ctx, is, env := testSetup(t)

	_, err := env.pipeline.Ingest(ctx, types.Telemetry{SiteID: "CWC-999", Level: ptr(1.0)})
	is.True(errors.Is(err, sensors.ErrSensorNotFound))

	_, err = env.pipeline.Ingest(ctx, types.Telemetry{Level: ptr(1.0)})
	is.True(errors.Is(err, types.ErrValidation))
}

func TestTelemetryTopicHandler(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	p := &PipelineMock{
		IngestFunc: func(ctx context.Context, t types.Telemetry) (Result, error) {
			return Result{Sensor: types.Sensor{ID: "sensor-1", SiteID: t.SiteID}}, nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.TelemetryReceived{
				Telemetry: types.Telemetry{SiteID: "CWC-002", Level: ptr(48.2), Battery: 76, Signal: 85},
			})
			return b
		},
	}

	NewTelemetryHandler(p)(ctx, msg, slog.Default())

	is.Equal(len(p.IngestCalls()), 1)
	is.Equal(p.IngestCalls()[0].T.SiteID, "CWC-002")
	is.Equal(*p.IngestCalls()[0].T.Level, 48.2)
}

func TestRegisterTopicMessageHandlers(t *testing.T) {
	is := is.New(t)

	topics := []string{}
	m := &messaging.MsgContextMock{
		RegisterTopicMessageHandlerFunc: func(topic string, handler messaging.TopicMessageHandler) error {
			topics = append(topics, topic)
			return nil
		},
	}

	is.NoErr(RegisterTopicMessageHandlers(m, &PipelineMock{}))
	is.Equal(topics, []string{types.TopicTelemetry})
}

func TestMQTTMessageTakesSiteIDFromTopic(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	p := &PipelineMock{
		IngestFunc: func(ctx context.Context, t types.Telemetry) (Result, error) {
			return Result{}, nil
		},
	}

	b := &MQTTBridge{topic: MQTTTopic, pipeline: p, log: slog.Default()}

	b.HandleMessage(ctx, "sensors/CWC-004/telemetry", []byte(`{"level":12.5,"battery":60,"signal":70}`))
	b.HandleMessage(ctx, "sensors/CWC-004/telemetry", []byte(`{"siteId":"CWC-005","level":12.5,"battery":60,"signal":70}`))
	b.HandleMessage(ctx, "sensors/CWC-004/telemetry", []byte(`not json`))

	is.Equal(len(p.IngestCalls()), 2)
	is.Equal(p.IngestCalls()[0].T.SiteID, "CWC-004")
	is.Equal(p.IngestCalls()[1].T.SiteID, "CWC-005")
}

func TestSiteIDFromTopic(t *testing.T) {
	is := is.New(t)

	is.Equal(SiteIDFromTopic("sensors/CWC-001/telemetry"), "CWC-001")
	is.Equal(SiteIDFromTopic("sensors/CWC-001"), "")
	is.Equal(SiteIDFromTopic("devices/CWC-001/telemetry"), "")
}
