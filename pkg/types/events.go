package types

import (
	"encoding/json"
	"time"
)

const (
	TopicTelemetry         string = "water-level.telemetry"
	TopicSensorUpdated     string = "water-level.sensorUpdated"
	TopicReadingAdded      string = "water-level.readingAdded"
	TopicAlertRaised       string = "water-level.alertRaised"
	TopicAlertAcknowledged string = "water-level.alertAcknowledged"
)

type SensorUpdated struct {
	Sensor    Sensor    `json:"sensor"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *SensorUpdated) ContentType() string {
	return "application/json"
}
func (e *SensorUpdated) TopicName() string {
	return TopicSensorUpdated
}
func (e *SensorUpdated) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}

type ReadingAdded struct {
	Reading   Reading   `json:"reading"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ReadingAdded) ContentType() string {
	return "application/json"
}
func (e *ReadingAdded) TopicName() string {
	return TopicReadingAdded
}
func (e *ReadingAdded) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}

type AlertRaised struct {
	Alert     Alert     `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AlertRaised) ContentType() string {
	return "application/json"
}
func (e *AlertRaised) TopicName() string {
	return TopicAlertRaised
}
func (e *AlertRaised) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}

type AlertAcknowledged struct {
	Alert     Alert     `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AlertAcknowledged) ContentType() string {
	return "application/json"
}
func (e *AlertAcknowledged) TopicName() string {
	return TopicAlertAcknowledged
}
func (e *AlertAcknowledged) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}

// TelemetryReceived is the message ingestion clients publish on the telemetry topic.
type TelemetryReceived struct {
	Telemetry
}

func (e *TelemetryReceived) ContentType() string {
	return "application/json"
}
func (e *TelemetryReceived) TopicName() string {
	return TopicTelemetry
}
func (e *TelemetryReceived) Body() []byte {
	b, _ := json.Marshal(e)
	return b
}
