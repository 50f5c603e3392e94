package alerts

import (
	"github.com/diwise/iot-water-level/pkg/types"
)

const (
	MessageWarning string = "Water level exceeded warning threshold"
	MessageDanger  string = "Water level exceeded danger threshold"
	MessageOffline string = "Sensor offline - no data received"
)

// AlertFor decides if moving from previous to current should raise an alert.
// Only upward moves into Warning or Danger qualify. Offline is treated as Normal on the way up.
func AlertFor(previous, current types.Status) (types.Severity, bool) {
	from := max(previous.Rank(), types.StatusNormal.Rank())

	if current.Rank() <= from {
		return "", false
	}

	switch current {
	case types.StatusWarning:
		return types.SeverityWarning, true
	case types.StatusDanger:
		return types.SeverityDanger, true
	}

	return "", false
}

func MessageFor(severity types.Severity) string {
	if severity == types.SeverityDanger {
		return MessageDanger
	}
	return MessageWarning
}

// Suppress reports whether raising severity would only repeat the latest active alert.
func Suppress(latest types.Alert, found bool, severity types.Severity) bool {
	return found && latest.Status == types.AlertStatusActive && latest.Severity == severity
}
