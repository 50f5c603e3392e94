package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/iot-water-level/pkg/types"
)

const (
	colSiteID int = iota
	colName
	colBasin
	colLat
	colLon
	colNormal
	colWarning
	colDanger
	columns
)

// ParseSensors reads rows of siteId;name;basin;lat;lon;normal;warning;danger.
// A first row starting with siteId is treated as a header.
func ParseSensors(data io.Reader) ([]sensors.Registration, error) {
	r := csv.NewReader(data)
	r.Comma = ';'
	r.Comment = '#'
	r.FieldsPerRecord = columns
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrValidation, err)
	}

	registrations := make([]sensors.Registration, 0, len(rows))
	var errs []error

	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[colSiteID]), "siteid") {
			continue
		}

		reg, err := toRegistration(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}

		registrations = append(registrations, reg)
	}

	return registrations, errors.Join(errs...)
}

func toRegistration(row []string) (sensors.Registration, error) {
	f := func(col int) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: column %d is not a number", types.ErrValidation, col+1)
		}
		return v, nil
	}

	lat, err1 := f(colLat)
	lon, err2 := f(colLon)
	normal, err3 := f(colNormal)
	warning, err4 := f(colWarning)
	danger, err5 := f(colDanger)

	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return sensors.Registration{}, err
	}

	return sensors.Registration{
		SiteID:     strings.TrimSpace(row[colSiteID]),
		Name:       strings.TrimSpace(row[colName]),
		Basin:      strings.TrimSpace(row[colBasin]),
		Location:   types.Location{Latitude: lat, Longitude: lon},
		Battery:    100,
		Signal:     100,
		Thresholds: types.Thresholds{Normal: normal, Warning: warning, Danger: danger},
	}, nil
}
