package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

//go:generate moq -rm -out admin_mock.go . Admin
type Admin interface {
	Reset(ctx context.Context) error
	Seed(ctx context.Context, data io.Reader) (int, error)
}

type Resetter interface {
	Reset(ctx context.Context) error
}

type SensorRegistrar interface {
	Register(ctx context.Context, r sensors.Registration) (string, error)
}

// adminSvc runs one administrative operation at a time.
type adminSvc struct {
	mu       sync.Mutex
	store    Resetter
	registry SensorRegistrar
}

func New(store Resetter, registry SensorRegistrar) Admin {
	return &adminSvc{
		store:    store,
		registry: registry,
	}
}

// Reset removes all sensors, readings and alerts.
func (a *adminSvc) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.store.Reset(ctx)
	if err != nil {
		return err
	}

	logging.GetFromContext(ctx).Warn("all sensors, readings and alerts were removed")

	return nil
}

// Seed registers the sensors found in a csv file. Sensors with a known site id are skipped.
func (a *adminSvc) Seed(ctx context.Context, data io.Reader) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	log := logging.GetFromContext(ctx)

	registrations, err := ParseSensors(data)
	if err != nil {
		return 0, err
	}

	log.Info("loaded sensors from file", slog.Int("records", len(registrations)))

	created := 0

	for _, r := range registrations {
		_, err := a.registry.Register(ctx, r)
		if errors.Is(err, sensors.ErrDuplicateSiteID) {
			log.Debug("sensor already exists", "site_id", r.SiteID)
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
