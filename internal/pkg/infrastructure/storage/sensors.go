package storage

import (
	"context"

	"github.com/diwise/iot-water-level/pkg/types"
	"gorm.io/gorm"
)

func (s *Storage) AddSensor(ctx context.Context, sensor types.Sensor) error {
	if sensor.ID == "" || sensor.SiteID == "" {
		return ErrNoID
	}

	m := toSensorModel(sensor)

	err := s.db.WithContext(ctx).Create(&m).Error
	return translate(err)
}

func (s *Storage) QuerySensors(ctx context.Context, conditions ...ConditionFunc) ([]types.Sensor, error) {
	c := newCondition(conditions...)

	var rows []sensor
	err := c.Apply(s.db.WithContext(ctx).Model(&sensor{}), "last_updated").
		Order("site_id " + c.SortOrder("ASC")).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sensors := make([]types.Sensor, 0, len(rows))
	for _, r := range rows {
		sensors = append(sensors, r.toType())
	}

	return sensors, nil
}

// GetSensor expects the conditions to match exactly one sensor.
func (s *Storage) GetSensor(ctx context.Context, conditions ...ConditionFunc) (types.Sensor, error) {
	c := newCondition(conditions...)

	var rows []sensor
	err := c.Apply(s.db.WithContext(ctx).Model(&sensor{}), "").Limit(2).Find(&rows).Error
	if err != nil {
		return types.Sensor{}, err
	}

	switch len(rows) {
	case 0:
		return types.Sensor{}, ErrNotFound
	case 1:
		return rows[0].toType(), nil
	}

	return types.Sensor{}, ErrTooManyRows
}

// UpdateSensor loads a sensor, lets fn modify it and saves the result within one transaction.
// Both the stored and the updated version of the sensor are returned.
func (s *Storage) UpdateSensor(ctx context.Context, sensorID string, fn func(*types.Sensor) error) (types.Sensor, types.Sensor, error) {
	var previous, updated types.Sensor

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m sensor
		err := tx.Where("id = ?", sensorID).First(&m).Error
		if err != nil {
			return translate(err)
		}

		previous = m.toType()
		updated = m.toType()

		err = fn(&updated)
		if err != nil {
			return err
		}

		updated.ID = previous.ID
		u := toSensorModel(updated)

		return translate(tx.Save(&u).Error)
	})
	if err != nil {
		return types.Sensor{}, types.Sensor{}, err
	}

	return previous, updated, nil
}

func (s *Storage) CountSensorsByStatus(ctx context.Context) (map[types.Status]int, error) {
	var rows []struct {
		Status string
		Count  int
	}

	err := s.db.WithContext(ctx).Model(&sensor{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[types.Status]int{}
	for _, r := range rows {
		counts[types.Status(r.Status)] = r.Count
	}

	return counts, nil
}
