package storage

import (
	"time"

	"github.com/diwise/iot-water-level/pkg/types"
)

// timestamps are stored as milliseconds since epoch, seq orders rows sharing a timestamp

type sensor struct {
	ID               string   `gorm:"primaryKey;size:36"`
	SiteID           string   `gorm:"uniqueIndex;not null"`
	Name             string   `gorm:"not null"`
	Basin            string
	Latitude         float64
	Longitude        float64
	Level            *float64
	Battery          float64
	Signal           float64
	Status           string `gorm:"index;not null"`
	StatusOverride   bool
	ThresholdNormal  float64
	ThresholdWarning float64
	ThresholdDanger  float64
	LastUpdated      int64 `gorm:"index"`
}

func (sensor) TableName() string {
	return "sensors"
}

type reading struct {
	ID        string `gorm:"primaryKey;size:36"`
	SensorID  string `gorm:"index:idx_readings_sensor_time,priority:1;not null"`
	Timestamp int64  `gorm:"index:idx_readings_sensor_time,priority:2;not null"`
	Seq       int64  `gorm:"not null;default:0"`
	Level     float64
	Battery   float64
	Signal    float64
}

func (reading) TableName() string {
	return "readings"
}

type alert struct {
	ID             string `gorm:"primaryKey;size:36"`
	SensorID       string `gorm:"index;not null"`
	SiteName       string
	Severity       string `gorm:"index;not null"`
	Level          float64
	Message        string
	Status         string `gorm:"index;not null"`
	Timestamp      int64  `gorm:"index;not null"`
	Seq            int64  `gorm:"not null;default:0"`
	AcknowledgedAt *int64
}

func (alert) TableName() string {
	return "alerts"
}

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMs(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func toSensorModel(s types.Sensor) sensor {
	return sensor{
		ID:               s.ID,
		SiteID:           s.SiteID,
		Name:             s.Name,
		Basin:            s.Basin,
		Latitude:         s.Location.Latitude,
		Longitude:        s.Location.Longitude,
		Level:            s.Level,
		Battery:          s.Battery,
		Signal:           s.Signal,
		Status:           string(s.Status),
		StatusOverride:   s.StatusOverride,
		ThresholdNormal:  s.Thresholds.Normal,
		ThresholdWarning: s.Thresholds.Warning,
		ThresholdDanger:  s.Thresholds.Danger,
		LastUpdated:      ms(s.LastUpdated),
	}
}

func (m sensor) toType() types.Sensor {
	return types.Sensor{
		ID:     m.ID,
		SiteID: m.SiteID,
		Name:   m.Name,
		Basin:  m.Basin,
		Location: types.Location{
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		},
		Level:          m.Level,
		Battery:        m.Battery,
		Signal:         m.Signal,
		Status:         types.Status(m.Status),
		StatusOverride: m.StatusOverride,
		Thresholds: types.Thresholds{
			Normal:  m.ThresholdNormal,
			Warning: m.ThresholdWarning,
			Danger:  m.ThresholdDanger,
		},
		LastUpdated: fromMs(m.LastUpdated),
	}
}

func toReadingModel(r types.Reading) reading {
	return reading{
		ID:        r.ID,
		SensorID:  r.SensorID,
		Timestamp: ms(r.Timestamp),
		Level:     r.Level,
		Battery:   r.Battery,
		Signal:    r.Signal,
	}
}

func (m reading) toType() types.Reading {
	return types.Reading{
		ID:        m.ID,
		SensorID:  m.SensorID,
		Level:     m.Level,
		Battery:   m.Battery,
		Signal:    m.Signal,
		Timestamp: fromMs(m.Timestamp),
	}
}

func toAlertModel(a types.Alert) alert {
	m := alert{
		ID:        a.ID,
		SensorID:  a.SensorID,
		SiteName:  a.SiteName,
		Severity:  string(a.Severity),
		Level:     a.Level,
		Message:   a.Message,
		Status:    string(a.Status),
		Timestamp: ms(a.Timestamp),
	}

	if a.AcknowledgedAt != nil {
		ackAt := ms(*a.AcknowledgedAt)
		m.AcknowledgedAt = &ackAt
	}

	return m
}

func (m alert) toType() types.Alert {
	a := types.Alert{
		ID:        m.ID,
		SensorID:  m.SensorID,
		SiteName:  m.SiteName,
		Severity:  types.Severity(m.Severity),
		Level:     m.Level,
		Message:   m.Message,
		Status:    types.AlertStatus(m.Status),
		Timestamp: fromMs(m.Timestamp),
	}

	if m.AcknowledgedAt != nil {
		ackAt := fromMs(*m.AcknowledgedAt)
		a.AcknowledgedAt = &ackAt
	}

	return a
}
