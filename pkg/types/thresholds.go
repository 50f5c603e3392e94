package types

import (
	"fmt"
	"math"
	"time"
)

type Thresholds struct {
	Normal  float64 `json:"normal" yaml:"normal"`
	Warning float64 `json:"warning" yaml:"warning"`
	Danger  float64 `json:"danger" yaml:"danger"`
}

func (t Thresholds) Validate() error {
	for _, v := range []float64{t.Normal, t.Warning, t.Danger} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: thresholds must be finite", ErrValidation)
		}
	}

	if !(t.Normal < t.Warning && t.Warning < t.Danger) {
		return fmt.Errorf("%w: thresholds must satisfy normal < warning < danger (%v, %v, %v)", ErrValidation, t.Normal, t.Warning, t.Danger)
	}

	return nil
}

// Classify maps a level onto a status. A nil level means the sensor reported no data.
func Classify(level *float64, t Thresholds) Status {
	if level == nil {
		return StatusOffline
	}

	switch {
	case *level >= t.Danger:
		return StatusDanger
	case *level >= t.Warning:
		return StatusWarning
	default:
		return StatusNormal
	}
}

type TimeRange string

const (
	Last24Hours TimeRange = "24hr"
	Last7Days   TimeRange = "7day"
	Last30Days  TimeRange = "30day"
)

// ParseTimeRange never fails, anything but an exact preset falls back to the last 24 hours.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case Last7Days:
		return Last7Days
	case Last30Days:
		return Last30Days
	}
	return Last24Hours
}

func (r TimeRange) Duration() time.Duration {
	switch r {
	case Last7Days:
		return 7 * 24 * time.Hour
	case Last30Days:
		return 30 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// Window returns the half open interval (from, to] ending at now.
func (r TimeRange) Window(now time.Time) (from, to time.Time) {
	return now.Add(-r.Duration()), now
}
