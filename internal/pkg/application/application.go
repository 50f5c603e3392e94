package application

import (
	"context"

	"github.com/diwise/iot-water-level/internal/pkg/application/admin"
	"github.com/diwise/iot-water-level/internal/pkg/application/alerts"
	"github.com/diwise/iot-water-level/internal/pkg/application/events"
	"github.com/diwise/iot-water-level/internal/pkg/application/readings"
	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/iot-water-level/internal/pkg/application/telemetry"
	"github.com/diwise/iot-water-level/internal/pkg/application/watchdog"
	"github.com/diwise/iot-water-level/internal/pkg/application/webevents"
	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

//go:generate moq -rm -out application_mock.go . App
type App interface {
	Start(ctx context.Context) error
	Stop()

	Sensors() sensors.SensorRegistry
	Readings() readings.ReadingLog
	Alerts() alerts.AlertEngine
	Pipeline() telemetry.Pipeline
	Admin() admin.Admin
	WebEvents() webevents.WebEvents

	Overview(ctx context.Context) (types.Overview, error)
}

type statusCounter interface {
	CountSensorsByStatus(ctx context.Context) (map[types.Status]int, error)
}

type app struct {
	messenger messaging.MsgContext
	counter   statusCounter

	sensors     sensors.SensorRegistry
	readings    readings.ReadingLog
	alerts      alerts.AlertEngine
	pipeline    telemetry.Pipeline
	admin       admin.Admin
	webEvents   webevents.WebEvents
	eventSender events.EventSender
	watchdog    watchdog.Watchdog
}

func New(s *storage.Storage, messenger messaging.MsgContext, cfg *Config) App {
	if cfg == nil {
		cfg = &Config{}
	}

	a := &app{
		messenger: messenger,
		counter:   s,
		sensors:   sensors.New(s, messenger),
		readings:  readings.New(s, messenger),
		alerts:    alerts.New(s, messenger),
		webEvents: webevents.New(),
	}

	a.pipeline = telemetry.New(a.sensors, a.readings, a.alerts)
	a.admin = admin.New(s, a.sensors)
	a.eventSender = events.New(&events.Config{Notifications: cfg.Notifications})
	a.watchdog = watchdog.New(a.sensors, a.pipeline, cfg.Watchdog)

	return a
}

// Start subscribes to the telemetry topic and the topics that feed web events and
// notifications, then starts the messenger and the watchdog.
func (a *app) Start(ctx context.Context) error {
	err := telemetry.RegisterTopicMessageHandlers(a.messenger, a.pipeline)
	if err != nil {
		return err
	}

	err = a.webEvents.RegisterTopicMessageHandlers(a.messenger)
	if err != nil {
		return err
	}

	err = a.eventSender.RegisterTopicMessageHandlers(a.messenger)
	if err != nil {
		return err
	}

	a.messenger.Start()
	a.watchdog.Start(ctx)

	logging.GetFromContext(ctx).Info("application started")

	return nil
}

func (a *app) Stop() {
	a.watchdog.Stop()
	a.webEvents.Shutdown()
}

func (a *app) Sensors() sensors.SensorRegistry { return a.sensors }
func (a *app) Readings() readings.ReadingLog { return a.readings }
func (a *app) Alerts() alerts.AlertEngine { return a.alerts }
func (a *app) Pipeline() telemetry.Pipeline { return a.pipeline }
func (a *app) Admin() admin.Admin { return a.admin }
func (a *app) WebEvents() webevents.WebEvents { return a.webEvents }

// Overview summarizes the current state for the dashboard header.
func (a *app) Overview(ctx context.Context) (types.Overview, error) {
	counts, err := a.counter.CountSensorsByStatus(ctx)
	if err != nil {
		return types.Overview{}, err
	}

	active, err := a.alerts.CountActive(ctx)
	if err != nil {
		return types.Overview{}, err
	}

	return Summarize(counts, active), nil
}

// Summarize builds an overview from the number of sensors per status. Every status is present in ByStatus.
func Summarize(counts map[types.Status]int, activeAlerts int) types.Overview {
	o := types.Overview{
		ActiveAlerts: activeAlerts,
		ByStatus: map[types.Status]int{
			types.StatusNormal:  0,
			types.StatusWarning: 0,
			types.StatusDanger:  0,
			types.StatusOffline: 0,
		},
	}

	for status, n := range counts {
		o.ByStatus[status] += n
		o.Sensors += n
		if status != types.StatusOffline {
			o.Online += n
		}
	}

	return o
}
