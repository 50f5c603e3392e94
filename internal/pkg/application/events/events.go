package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"golang.org/x/sys/unix"
)

var tracer = otel.Tracer("iot-water-level/events")

const (
	TypeAlertRaised       string = "water-level.alertRaised"
	TypeAlertAcknowledged string = "water-level.alertAcknowledged"
)

const source string = "github.com/diwise/iot-water-level"

type EventSender interface {
	Send(ctx context.Context, eventType string, alert types.Alert) error
	RegisterTopicMessageHandlers(messenger messaging.MsgContext) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) EventSender {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = append(e.subscribers[s.Type], s.Subscribers...)
		}
	}

	return e
}

// Send delivers an alert as a cloud event to every subscriber of the event type.
func (e *eventSender) Send(ctx context.Context, eventType string, alert types.Alert) error {
	subscribers, ok := e.subscribers[eventType]
	if !ok || len(subscribers) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	timestamp := alert.Timestamp
	if alert.AcknowledgedAt != nil && eventType == TypeAlertAcknowledged {
		timestamp = *alert.AcknowledgedAt
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%s:%d", alert.ID, alert.Status, timestamp.UnixMilli()))
	event.SetTime(timestamp)
	event.SetSource(source)
	event.SetType(eventType)

	err = event.SetData(cloudevents.ApplicationJSON, alert)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	var errs []error

	for _, s := range subscribers {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			errs = append(errs, fmt.Errorf("%s: %w", s.Endpoint, result))
		}
	}

	return errors.Join(errs...)
}

func (e *eventSender) RegisterTopicMessageHandlers(messenger messaging.MsgContext) error {
	if len(e.subscribers[TypeAlertRaised]) > 0 {
		err := messenger.RegisterTopicMessageHandler(types.TopicAlertRaised, e.alertHandler(TypeAlertRaised, func(b []byte) (types.Alert, error) {
			msg := types.AlertRaised{}
			err := json.Unmarshal(b, &msg)
			return msg.Alert, err
		}))
		if err != nil {
			return err
		}
	}

	if len(e.subscribers[TypeAlertAcknowledged]) > 0 {
		err := messenger.RegisterTopicMessageHandler(types.TopicAlertAcknowledged, e.alertHandler(TypeAlertAcknowledged, func(b []byte) (types.Alert, error) {
			msg := types.AlertAcknowledged{}
			err := json.Unmarshal(b, &msg)
			return msg.Alert, err
		}))
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *eventSender) alertHandler(eventType string, decode func([]byte) (types.Alert, error)) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "notify-"+eventType)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		alert, err := decode(itm.Body())
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		err = e.Send(ctx, eventType, alert)
		if err != nil {
			log.Error("failed to notify subscribers", "alert_id", alert.ID, "err", err.Error())
		}
	}
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}
