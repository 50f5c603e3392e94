package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

var tracer = otel.Tracer("iot-water-level-client")

type WaterLevelClient interface {
	RegisterSensor(ctx context.Context, r Registration) (types.Sensor, error)
	FindSensorBySiteID(ctx context.Context, siteID string) (types.Sensor, error)
	QuerySensors(ctx context.Context, status ...types.Status) ([]types.Sensor, error)
	SendTelemetry(ctx context.Context, siteID string, t types.Telemetry) (TelemetryResult, error)
	QueryReadings(ctx context.Context, siteID string, timeRange types.TimeRange) ([]types.Reading, error)
	QueryAlerts(ctx context.Context, status types.AlertStatus, severity types.Severity) ([]types.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID string) (types.Alert, error)
	Overview(ctx context.Context) (types.Overview, error)

	Close(ctx context.Context)
}

type Registration struct {
	SiteID     string           `json:"siteId"`
	Name       string           `json:"name"`
	Basin      string           `json:"basin"`
	Location   types.Location   `json:"location"`
	Level      *float64         `json:"level"`
	Battery    float64          `json:"battery"`
	Signal     float64          `json:"signal"`
	Status     *types.Status    `json:"status,omitempty"`
	Thresholds types.Thresholds `json:"thresholds"`
}

type TelemetryResult struct {
	Sensor    types.Sensor `json:"sensor"`
	AlertID   string       `json:"alertId,omitempty"`
	ReadingID string       `json:"readingId,omitempty"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type wlClient struct {
	url        string
	httpClient http.Client
}

// New returns a client that authenticates with the client credentials flow against the token url.
func New(ctx context.Context, waterLevelURL, oauthTokenURL, oauthClientID, oauthClientSecret string) (WaterLevelClient, error) {
	oauthConfig := &clientcredentials.Config{
		ClientID:     oauthClientID,
		ClientSecret: oauthClientSecret,
		TokenURL:     oauthTokenURL,
	}

	base := otelhttp.NewTransport(http.DefaultTransport)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: base})
	tokenSource := oauthConfig.TokenSource(ctx)

	token, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthConfig.TokenURL, err)
	}

	if !token.Valid() {
		return nil, fmt.Errorf("an invalid token was returned from %s", oauthTokenURL)
	}

	return &wlClient{
		url: strings.TrimSuffix(waterLevelURL, "/"),
		httpClient: http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.ReuseTokenSource(token, tokenSource),
				Base:   base,
			},
		},
	}, nil
}

func (c *wlClient) RegisterSensor(ctx context.Context, r Registration) (types.Sensor, error) {
	var err error
	ctx, span := tracer.Start(ctx, "register-sensor")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	sensor := types.Sensor{}
	err = c.do(ctx, http.MethodPost, "/api/v0/sensors", r, http.StatusCreated, &sensor)
	return sensor, err
}

func (c *wlClient) FindSensorBySiteID(ctx context.Context, siteID string) (types.Sensor, error) {
	var err error
	ctx, span := tracer.Start(ctx, "find-sensor-from-siteid")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	sensor := types.Sensor{}
	err = c.do(ctx, http.MethodGet, "/api/v0/sensors/"+url.PathEscape(siteID), nil, http.StatusOK, &sensor)
	return sensor, err
}

func (c *wlClient) QuerySensors(ctx context.Context, status ...types.Status) ([]types.Sensor, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-sensors")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	path := "/api/v0/sensors"
	if len(status) > 0 {
		s := make([]string, 0, len(status))
		for _, st := range status {
			s = append(s, string(st))
		}
		path += "?status=" + url.QueryEscape(strings.Join(s, ","))
	}

	result := []types.Sensor{}
	err = c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &result)
	return result, err
}

func (c *wlClient) SendTelemetry(ctx context.Context, siteID string, t types.Telemetry) (TelemetryResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "send-telemetry")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := TelemetryResult{}
	err = c.do(ctx, http.MethodPost, "/api/v0/sensors/"+url.PathEscape(siteID)+"/telemetry", t, http.StatusOK, &result)
	return result, err
}

func (c *wlClient) QueryReadings(ctx context.Context, siteID string, timeRange types.TimeRange) ([]types.Reading, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-readings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	path := fmt.Sprintf("/api/v0/sensors/%s/readings?timeRange=%s", url.PathEscape(siteID), url.QueryEscape(string(timeRange)))

	result := []types.Reading{}
	err = c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &result)
	return result, err
}

func (c *wlClient) QueryAlerts(ctx context.Context, status types.AlertStatus, severity types.Severity) ([]types.Alert, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-alerts")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	if status != "" {
		params.Set("status", string(status))
	}
	if severity != "" {
		params.Set("severity", string(severity))
	}

	path := "/api/v0/alerts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	result := []types.Alert{}
	err = c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &result)
	return result, err
}

func (c *wlClient) AcknowledgeAlert(ctx context.Context, alertID string) (types.Alert, error) {
	var err error
	ctx, span := tracer.Start(ctx, "acknowledge-alert")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body := map[string]types.AlertStatus{"status": types.AlertStatusAcknowledged}

	alert := types.Alert{}
	err = c.do(ctx, http.MethodPatch, "/api/v0/alerts/"+url.PathEscape(alertID), body, http.StatusOK, &alert)
	return alert, err
}

func (c *wlClient) Overview(ctx context.Context) (types.Overview, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-overview")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	overview := types.Overview{}
	err = c.do(ctx, http.MethodGet, "/api/v0/overview", nil, http.StatusOK, &overview)
	return overview, err
}

func (c *wlClient) Close(ctx context.Context) {
	c.httpClient.CloseIdleConnections()
}

func (c *wlClient) do(ctx context.Context, method, path string, body any, expected int, result any) error {
	log := logging.GetFromContext(ctx)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expected {
		log.Debug("unexpected response", "method", method, "path", path, "status_code", resp.StatusCode)
		return fmt.Errorf("%w: %s", statusError(resp.StatusCode), strings.TrimSpace(string(respBody)))
	}

	if result == nil {
		return nil
	}

	env := envelope{}
	err = json.Unmarshal(respBody, &env)
	if err == nil {
		err = json.Unmarshal(env.Data, result)
	}
	if err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return fmt.Errorf("request failed with status code %d", code)
}
