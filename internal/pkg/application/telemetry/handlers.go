package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

func RegisterTopicMessageHandlers(messenger messaging.MsgContext, p Pipeline) error {
	return messenger.RegisterTopicMessageHandler(types.TopicTelemetry, NewTelemetryHandler(p))
}

func NewTelemetryHandler(p Pipeline) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "receive-telemetry")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := types.TelemetryReceived{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		result, err := p.Ingest(ctx, msg.Telemetry)
		if err != nil {
			log.Error("failed to ingest telemetry", "sensor_id", msg.SensorID, "site_id", msg.SiteID, "err", err.Error())
			return
		}

		log.Debug("telemetry ingested", "sensor_id", result.Sensor.ID, "status", string(result.Sensor.Status))
	}
}
