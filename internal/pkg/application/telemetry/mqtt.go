package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTTopic is the subscription used by the bridge. The single level wildcard is the site id.
const MQTTTopic string = "sensors/+/telemetry"

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

func LoadMQTTConfiguration(ctx context.Context) MQTTConfig {
	return MQTTConfig{
		Broker:   env.GetVariableOrDefault(ctx, "MQTT_BROKER", ""),
		ClientID: env.GetVariableOrDefault(ctx, "MQTT_CLIENT_ID", "iot-water-level"),
		Username: env.GetVariableOrDefault(ctx, "MQTT_USERNAME", ""),
		Password: env.GetVariableOrDefault(ctx, "MQTT_PASSWORD", ""),
		Topic:    env.GetVariableOrDefault(ctx, "MQTT_TOPIC", MQTTTopic),
	}
}

// MQTTBridge subscribes to sensor telemetry published on an MQTT broker and feeds it to the pipeline.
type MQTTBridge struct {
	client   mqtt.Client
	topic    string
	pipeline Pipeline
	log      *slog.Logger
}

func NewMQTTBridge(ctx context.Context, cfg MQTTConfig, p Pipeline) (*MQTTBridge, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("no mqtt broker configured")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	topic := cfg.Topic
	if topic == "" {
		topic = MQTTTopic
	}

	return &MQTTBridge{
		client:   mqtt.NewClient(opts),
		topic:    topic,
		pipeline: p,
		log:      logging.GetFromContext(ctx),
	}, nil
}

func (b *MQTTBridge) Start(ctx context.Context) error {
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to mqtt broker: %w", token.Error())
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		b.HandleMessage(ctx, msg.Topic(), msg.Payload())
	}

	if token := b.client.Subscribe(b.topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", b.topic, token.Error())
	}

	b.log.Info("subscribed to mqtt telemetry", "topic", b.topic)

	return nil
}

func (b *MQTTBridge) Stop() {
	if b.client.IsConnected() {
		b.client.Unsubscribe(b.topic).Wait()
		b.client.Disconnect(250)
	}
}

// HandleMessage ingests one payload. A payload without a site id takes it from the topic.
func (b *MQTTBridge) HandleMessage(ctx context.Context, topic string, payload []byte) {
	var err error

	ctx, span := tracer.Start(ctx, "receive-mqtt-telemetry")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, b.log, ctx)

	t := types.Telemetry{}

	err = json.Unmarshal(payload, &t)
	if err != nil {
		log.Error("failed to unmarshal mqtt payload", "topic", topic, "err", err.Error())
		return
	}

	if t.SensorID == "" && t.SiteID == "" {
		t.SiteID = SiteIDFromTopic(topic)
	}

	_, err = b.pipeline.Ingest(ctx, t)
	if err != nil {
		log.Error("failed to ingest mqtt telemetry", "topic", topic, "err", err.Error())
	}
}

func SiteIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) == 3 && parts[0] == "sensors" && parts[2] == "telemetry" {
		return parts[1]
	}
	return ""
}
