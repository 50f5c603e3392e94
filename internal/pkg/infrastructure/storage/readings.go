package storage

import (
	"context"

	"github.com/diwise/iot-water-level/pkg/types"
)

func (s *Storage) AddReading(ctx context.Context, r types.Reading) error {
	if r.ID == "" || r.SensorID == "" {
		return ErrNoID
	}

	m := toReadingModel(r)
	m.Seq = s.next()

	return translate(s.db.WithContext(ctx).Create(&m).Error)
}

func (s *Storage) QueryReadings(ctx context.Context, conditions ...ConditionFunc) ([]types.Reading, error) {
	c := newCondition(conditions...)

	var rows []reading
	err := c.Apply(s.db.WithContext(ctx).Model(&reading{}), "timestamp").
		Order("timestamp " + c.SortOrder("DESC")).
		Order("seq " + c.SortOrder("DESC")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	readings := make([]types.Reading, 0, len(rows))
	for _, r := range rows {
		readings = append(readings, r.toType())
	}

	return readings, nil
}
