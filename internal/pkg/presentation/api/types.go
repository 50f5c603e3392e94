package api

import (
	"encoding/json"

	"github.com/diwise/iot-water-level/pkg/types"
)

type meta struct {
	TotalRecords uint64 `json:"totalRecords"`
	Count        uint64 `json:"count"`
}

type ApiResponse struct {
	Meta *meta `json:"meta,omitempty"`
	Data any   `json:"data"`
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

func newListResponse[T any](items []T) ApiResponse {
	if items == nil {
		items = []T{}
	}
	return ApiResponse{
		Meta: &meta{
			TotalRecords: uint64(len(items)),
			Count:        uint64(len(items)),
		},
		Data: items,
	}
}

type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
	Meta     *meta            `json:"meta,omitempty"`
}

type GeoJSONFeature struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Geometry   GeoJSONPoint   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type GeoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewFeatureCollectionWithSensors(sensors []types.Sensor) *GeoJSONFeatureCollection {
	fc := &GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, len(sensors)),
		Meta: &meta{
			TotalRecords: uint64(len(sensors)),
			Count:        uint64(len(sensors)),
		},
	}

	for _, s := range sensors {
		fc.Features = append(fc.Features, ConvertSensor(s))
	}

	return fc
}

// ConvertSensor maps a sensor to a map marker. Coordinates are in longitude, latitude order.
func ConvertSensor(s types.Sensor) GeoJSONFeature {
	return GeoJSONFeature{
		ID:   s.ID,
		Type: "Feature",
		Geometry: GeoJSONPoint{
			Type:        "Point",
			Coordinates: [2]float64{s.Location.Longitude, s.Location.Latitude},
		},
		Properties: map[string]any{
			"siteId":      s.SiteID,
			"name":        s.Name,
			"basin":       s.Basin,
			"level":       s.Level,
			"battery":     s.Battery,
			"signal":      s.Signal,
			"status":      s.Status,
			"statusColor": s.Status.Color(),
			"gauge":       s.Gauge(),
			"thresholds":  s.Thresholds,
			"lastUpdated": s.LastUpdated,
		},
	}
}

type alertRequest struct {
	SensorID string         `json:"sensorId"`
	Severity types.Severity `json:"severity"`
	Level    float64        `json:"level"`
	Message  string         `json:"message"`
}

type readingRequest struct {
	Level   float64 `json:"level"`
	Battery float64 `json:"battery"`
	Signal  float64 `json:"signal"`
}

type alertPatch struct {
	Status types.AlertStatus `json:"status"`
}
