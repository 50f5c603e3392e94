package storage

import (
	"context"
	"time"

	"github.com/diwise/iot-water-level/pkg/types"
	"gorm.io/gorm"
)

func (s *Storage) AddAlert(ctx context.Context, a types.Alert) error {
	if a.ID == "" || a.SensorID == "" {
		return ErrNoID
	}

	m := toAlertModel(a)
	m.Seq = s.next()

	return translate(s.db.WithContext(ctx).Create(&m).Error)
}

func (s *Storage) QueryAlerts(ctx context.Context, conditions ...ConditionFunc) ([]types.Alert, error) {
	c := newCondition(conditions...)

	var rows []alert
	err := c.Apply(s.db.WithContext(ctx).Model(&alert{}), "timestamp").
		Order("timestamp " + c.SortOrder("DESC")).
		Order("seq " + c.SortOrder("DESC")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]types.Alert, 0, len(rows))
	for _, r := range rows {
		alerts = append(alerts, r.toType())
	}

	return alerts, nil
}

func (s *Storage) GetAlert(ctx context.Context, conditions ...ConditionFunc) (types.Alert, error) {
	c := newCondition(conditions...)

	var m alert
	err := c.Apply(s.db.WithContext(ctx).Model(&alert{}), "timestamp").
		Order("timestamp DESC").
		Order("seq DESC").
		Take(&m).Error
	if err != nil {
		return types.Alert{}, translate(err)
	}

	return m.toType(), nil
}

func (s *Storage) CountAlerts(ctx context.Context, conditions ...ConditionFunc) (int, error) {
	c := newCondition(conditions...)

	var count int64
	err := c.Apply(s.db.WithContext(ctx).Model(&alert{}), "timestamp").Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// AcknowledgeAlert moves an active alert to acknowledged. An already acknowledged alert is returned unchanged.
func (s *Storage) AcknowledgeAlert(ctx context.Context, alertID string, at time.Time) (types.Alert, bool, error) {
	var result types.Alert
	changed := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m alert
		err := tx.Where("id = ?", alertID).First(&m).Error
		if err != nil {
			return translate(err)
		}

		if types.AlertStatus(m.Status) == types.AlertStatusAcknowledged {
			result = m.toType()
			return nil
		}

		ackAt := ms(at)
		err = tx.Model(&alert{}).
			Where("id = ? AND status = ?", alertID, string(types.AlertStatusActive)).
			Updates(map[string]any{
				"status":          string(types.AlertStatusAcknowledged),
				"acknowledged_at": ackAt,
			}).Error
		if err != nil {
			return err
		}

		m.Status = string(types.AlertStatusAcknowledged)
		m.AcknowledgedAt = &ackAt
		result = m.toType()
		changed = true

		return nil
	})
	if err != nil {
		return types.Alert{}, false, err
	}

	return result, changed, nil
}
