package webevents

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
)

// Topics forwarded to dashboard clients. The event name is the last segment of the topic.
var Topics = []string{
	types.TopicSensorUpdated,
	types.TopicReadingAdded,
	types.TopicAlertRaised,
	types.TopicAlertAcknowledged,
}

type WebEvents interface {
	Handler() http.Handler
	Shutdown()
	Publish(event string, data any) error
	RegisterTopicMessageHandlers(messenger messaging.MsgContext) error
}

type webEvents struct {
	s *gosse.Server
}

// New creates the event stream server. Cross origin access is left to the router it is mounted on.
func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{}),
	}
}

func (we *webEvents) Handler() http.Handler {
	return we.s
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

func (we *webEvents) Publish(event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	message := gosse.NewMessage("", string(b), event)
	we.s.SendMessage("", message)

	return nil
}

func (we *webEvents) RegisterTopicMessageHandlers(messenger messaging.MsgContext) error {
	for _, topic := range Topics {
		err := messenger.RegisterTopicMessageHandler(topic, we.forward(EventName(topic)))
		if err != nil {
			return err
		}
	}
	return nil
}

func (we *webEvents) forward(event string) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		err := we.Publish(event, json.RawMessage(itm.Body()))
		if err != nil {
			l.Warn("dropping web event with invalid body", "event", event, "err", err.Error())
		}
	}
}

func EventName(topic string) string {
	if i := strings.LastIndex(topic, "."); i >= 0 {
		return topic[i+1:]
	}
	return topic
}
