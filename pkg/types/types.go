package types

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrValidation = errors.New("validation failed")

type Status string

const (
	StatusNormal  Status = "Normal"
	StatusWarning Status = "Warning"
	StatusDanger  Status = "Danger"
	StatusOffline Status = "Offline"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusDanger, StatusOffline:
		return true
	}
	return false
}

// Rank orders the level classifications by severity. Offline has no level and ranks below Normal.
func (s Status) Rank() int {
	switch s {
	case StatusNormal:
		return 0
	case StatusWarning:
		return 1
	case StatusDanger:
		return 2
	}
	return -1
}

// Color is the marker color used by the dashboard map.
func (s Status) Color() string {
	switch s {
	case StatusNormal:
		return "green"
	case StatusWarning:
		return "orange"
	case StatusDanger:
		return "red"
	}
	return "gray"
}

type Severity string

const (
	SeverityWarning Severity = "Warning"
	SeverityDanger  Severity = "Danger"
)

func (s Severity) Valid() bool {
	return s == SeverityWarning || s == SeverityDanger
}

type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "Active"
	AlertStatusAcknowledged AlertStatus = "Acknowledged"
)

func (s AlertStatus) Valid() bool {
	return s == AlertStatusActive || s == AlertStatusAcknowledged
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f out of range", ErrValidation, l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f out of range", ErrValidation, l.Longitude)
	}
	return nil
}

type Sensor struct {
	ID             string     `json:"id"`
	SiteID         string     `json:"siteId"`
	Name           string     `json:"name"`
	Basin          string     `json:"basin"`
	Location       Location   `json:"location"`
	Level          *float64   `json:"level"`
	Battery        float64    `json:"battery"`
	Signal         float64    `json:"signal"`
	Status         Status     `json:"status"`
	StatusOverride bool       `json:"statusOverride,omitzero"`
	Thresholds     Thresholds `json:"thresholds"`
	LastUpdated    time.Time  `json:"lastUpdated"`
}

// Gauge is the level as a fraction of the gauge scale, which ends 10 units above the danger threshold.
// The result is always within [0, 1].
func (s Sensor) Gauge() float64 {
	scale := s.Thresholds.Danger + 10
	if s.Level == nil || scale <= 0 {
		return 0
	}

	g := *s.Level / scale
	if math.IsNaN(g) {
		return 0
	}

	return math.Max(0, math.Min(g, 1))
}

type Reading struct {
	ID        string    `json:"id"`
	SensorID  string    `json:"sensorId"`
	Level     float64   `json:"level"`
	Battery   float64   `json:"battery"`
	Signal    float64   `json:"signal"`
	Timestamp time.Time `json:"timestamp"`
}

type Alert struct {
	ID             string      `json:"id"`
	SensorID       string      `json:"sensorId"`
	SiteName       string      `json:"siteName"`
	Severity       Severity    `json:"severity"`
	Level          float64     `json:"level"`
	Message        string      `json:"message"`
	Status         AlertStatus `json:"status"`
	Timestamp      time.Time   `json:"timestamp"`
	AcknowledgedAt *time.Time  `json:"acknowledgedAt,omitempty"`
}

// Telemetry is a sample reported by, or on behalf of, a sensor. Either SensorID or SiteID identifies the sensor.
type Telemetry struct {
	SensorID  string    `json:"sensorId,omitempty"`
	SiteID    string    `json:"siteId,omitempty"`
	Level     *float64  `json:"level"`
	Battery   float64   `json:"battery"`
	Signal    float64   `json:"signal"`
	Status    *Status   `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

func ValidatePercent(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %f not within [0,100]", ErrValidation, name, v)
	}
	return nil
}

func ValidateLevel(level *float64) error {
	if level != nil && (math.IsNaN(*level) || math.IsInf(*level, 0)) {
		return fmt.Errorf("%w: level is not a number", ErrValidation)
	}
	return nil
}

type Overview struct {
	Sensors      int            `json:"sensors"`
	Online       int            `json:"online"`
	ActiveAlerts int            `json:"activeAlerts"`
	ByStatus     map[Status]int `json:"byStatus"`
}
