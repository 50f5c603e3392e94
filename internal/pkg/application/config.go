package application

import (
	"io"

	"github.com/diwise/iot-water-level/internal/pkg/application/events"
	"github.com/diwise/iot-water-level/internal/pkg/application/watchdog"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Watchdog      watchdog.Config       `yaml:"watchdog"`
	Notifications []events.Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
