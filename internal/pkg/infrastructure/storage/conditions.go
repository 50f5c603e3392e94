package storage

import (
	"strings"
	"time"

	"github.com/diwise/iot-water-level/pkg/types"
	"gorm.io/gorm"
)

type ConditionFunc func(*Condition) *Condition

// ID, SensorID and SiteID filter whenever they are set, an empty value matches nothing.
type Condition struct {
	ID       *string
	SensorID *string
	SiteID   *string

	SensorStatus []types.Status
	AlertStatus  types.AlertStatus
	Severity     types.Severity

	// After and Until select timestamps in (After, Until]
	After time.Time
	Until time.Time

	UpdatedBefore time.Time

	sortOrder string
}

func newCondition(conditions ...ConditionFunc) *Condition {
	c := &Condition{}
	for _, f := range conditions {
		f(c)
	}
	return c
}

func (c Condition) SortOrder(def string) string {
	if c.sortOrder == "" {
		return def
	}
	return c.sortOrder
}

// Apply adds the conditions to a query. Time bounds apply to the column named by timeColumn.
func (c Condition) Apply(tx *gorm.DB, timeColumn string) *gorm.DB {
	if c.ID != nil {
		tx = tx.Where("id = ?", *c.ID)
	}
	if c.SensorID != nil {
		tx = tx.Where("sensor_id = ?", *c.SensorID)
	}
	if c.SiteID != nil {
		tx = tx.Where("site_id = ?", *c.SiteID)
	}
	if len(c.SensorStatus) == 1 {
		tx = tx.Where("status = ?", string(c.SensorStatus[0]))
	}
	if len(c.SensorStatus) > 1 {
		statuses := make([]string, 0, len(c.SensorStatus))
		for _, s := range c.SensorStatus {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if c.AlertStatus != "" {
		tx = tx.Where("status = ?", string(c.AlertStatus))
	}
	if c.Severity != "" {
		tx = tx.Where("severity = ?", string(c.Severity))
	}
	if !c.After.IsZero() && timeColumn != "" {
		tx = tx.Where(timeColumn+" > ?", ms(c.After))
	}
	if !c.Until.IsZero() && timeColumn != "" {
		tx = tx.Where(timeColumn+" <= ?", ms(c.Until))
	}
	if !c.UpdatedBefore.IsZero() {
		tx = tx.Where("last_updated < ?", ms(c.UpdatedBefore))
	}
	return tx
}

func WithID(id string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ID = &id
		return c
	}
}

func WithSensorID(sensorID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SensorID = &sensorID
		return c
	}
}

func WithSiteID(siteID string) ConditionFunc {
	return func(c *Condition) *Condition {
		siteID = strings.TrimSpace(siteID)
		c.SiteID = &siteID
		return c
	}
}

func WithSensorStatus(status ...types.Status) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SensorStatus = append(c.SensorStatus, status...)
		return c
	}
}

func WithAlertStatus(status types.AlertStatus) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AlertStatus = status
		return c
	}
}

func WithSeverity(severity types.Severity) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Severity = severity
		return c
	}
}

func WithTimeWindow(after, until time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.After = after
		c.Until = until
		return c
	}
}

func WithUpdatedBefore(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.UpdatedBefore = ts
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}
