package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/diwise/iot-water-level/internal/pkg/application"
	"github.com/diwise/iot-water-level/internal/pkg/application/admin"
	"github.com/diwise/iot-water-level/internal/pkg/application/alerts"
	"github.com/diwise/iot-water-level/internal/pkg/application/readings"
	"github.com/diwise/iot-water-level/internal/pkg/application/sensors"
	"github.com/diwise/iot-water-level/internal/pkg/application/telemetry"
	"github.com/diwise/iot-water-level/internal/pkg/presentation/api/auth"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-water-level/api")

const maxUploadSize int64 = 8 << 20

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, app application.App) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	read := authenticator.RequireAccess(auth.ScopeRead)
	write := authenticator.RequireAccess(auth.ScopeWrite)

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/sensors", func(r chi.Router) {
			r.With(read).Get("/", querySensorsHandler(log, app.Sensors()))
			r.With(write).Post("/", registerSensorHandler(log, app.Sensors()))
			r.With(read).Get("/{siteID}", getSensorHandler(log, app.Sensors()))
			r.With(write).Post("/{siteID}/telemetry", ingestTelemetryHandler(log, app.Pipeline()))
			r.With(write).Post("/{siteID}/readings", appendReadingHandler(log, app.Sensors(), app.Readings()))
			r.With(read).Get("/{siteID}/readings", queryReadingsHandler(log, app.Sensors(), app.Readings()))
		})

		r.Route("/alerts", func(r chi.Router) {
			r.With(read).Get("/", queryAlertsHandler(log, app.Alerts()))
			r.With(write).Post("/", raiseAlertHandler(log, app.Sensors(), app.Alerts()))
			r.With(read).Get("/{alertID}", getAlertHandler(log, app.Alerts()))
			r.With(write).Patch("/{alertID}", patchAlertHandler(log, app.Alerts()))
		})

		r.With(read).Get("/overview", overviewHandler(log, app))
		r.With(read).Get("/events", app.WebEvents().Handler().ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.ScopeAdmin))

			r.Delete("/data", resetHandler(log, app.Admin()))
			r.Post("/sensors", seedSensorsHandler(log, app.Admin()))
		})
	})

	return router, nil
}

func querySensorsHandler(log *slog.Logger, svc sensors.SensorRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-sensors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		statuses, err := parseStatuses(r.URL.Query().Get("status"))
		if err != nil {
			writeError(w, requestLogger, err, "invalid status filter")
			return
		}

		result, err := svc.List(ctx, statuses...)
		if err != nil {
			writeError(w, requestLogger, err, "unable to fetch sensors")
			return
		}

		if wantsGeoJSON(r) {
			var b []byte
			b, err = json.Marshal(NewFeatureCollectionWithSensors(result))
			if err != nil {
				writeError(w, requestLogger, err, "unable to marshal feature collection")
				return
			}

			w.Header().Add("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			w.Write(b)
			return
		}

		writeResponse(w, http.StatusOK, newListResponse(result))
	}
}

func registerSensorHandler(log *slog.Logger, svc sensors.SensorRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "register-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var registration sensors.Registration
		err = decodeBody(r, &registration)
		if err != nil {
			writeError(w, requestLogger, err, "unable to unmarshal body")
			return
		}

		id, err := svc.Register(ctx, registration)
		if err != nil {
			writeError(w, requestLogger, err, "unable to register sensor")
			return
		}

		sensor, err := svc.Get(ctx, id)
		if err != nil {
			writeError(w, requestLogger, err, "unable to fetch registered sensor")
			return
		}

		w.Header().Add("Location", "/api/v0/sensors/"+sensor.SiteID)
		writeResponse(w, http.StatusCreated, ApiResponse{Data: sensor})
	}
}

func getSensorHandler(log *slog.Logger, svc sensors.SensorRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		siteID := chi.URLParam(r, "siteID")
		requestLogger = requestLogger.With(slog.String("site_id", siteID))

		sensor, err := svc.GetBySiteID(ctx, siteID)
		if err != nil {
			writeError(w, requestLogger, err, "could not fetch sensor")
			return
		}

		if wantsGeoJSON(r) {
			var b []byte
			b, err = json.Marshal(ConvertSensor(sensor))
			if err != nil {
				writeError(w, requestLogger, err, "unable to marshal feature")
				return
			}
			w.Header().Add("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			w.Write(b)
			return
		}

		writeResponse(w, http.StatusOK, ApiResponse{Data: sensor})
	}
}

func ingestTelemetryHandler(log *slog.Logger, pipeline telemetry.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "ingest-telemetry")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		siteID := chi.URLParam(r, "siteID")
		requestLogger = requestLogger.With(slog.String("site_id", siteID))

		var t types.Telemetry
		err = decodeBody(r, &t)
		if err != nil {
			writeError(w, requestLogger, err, "unable to unmarshal body")
			return
		}

		t.SensorID = ""
		t.SiteID = siteID

		result, err := pipeline.Ingest(ctx, t)
		if err != nil {
			writeError(w, requestLogger, err, "unable to ingest telemetry")
			return
		}

		writeResponse(w, http.StatusOK, ApiResponse{Data: result})
	}
}

func appendReadingHandler(log *slog.Logger, registry sensors.SensorRegistry, rl readings.ReadingLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "append-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		siteID := chi.URLParam(r, "siteID")
		requestLogger = requestLogger.With(slog.String("site_id", siteID))

		var req readingRequest
		err = decodeBody(r, &req)
		if err != nil {
			writeError(w, requestLogger, err, "unable to unmarshal body")
			return
		}

		sensor, err := registry.GetBySiteID(ctx, siteID)
		if err != nil {
			writeError(w, requestLogger, err, "could not fetch sensor")
			return
		}

		id, err := rl.Append(ctx, sensor.ID, req.Level, req.Battery, req.Signal)
		if err != nil {
			writeError(w, requestLogger, err, "unable to append reading")
			return
		}

		writeResponse(w, http.StatusCreated, ApiResponse{Data: map[string]string{"id": id}})
	}
}

func queryReadingsHandler(log *slog.Logger, registry sensors.SensorRegistry, rl readings.ReadingLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		siteID := chi.URLParam(r, "siteID")
		requestLogger = requestLogger.With(slog.String("site_id", siteID))

		sensor, err := registry.GetBySiteID(ctx, siteID)
		if err != nil {
			writeError(w, requestLogger, err, "could not fetch sensor")
			return
		}

		timeRange := types.ParseTimeRange(r.URL.Query().Get("timeRange"))

		result, err := rl.Query(ctx, sensor.ID, timeRange)
		if err != nil {
			writeError(w, requestLogger, err, "unable to query readings")
			return
		}

		writeResponse(w, http.StatusOK, newListResponse(result))
	}
}

func queryAlertsHandler(log *slog.Logger, engine alerts.AlertEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		q := r.URL.Query()
		status := types.AlertStatus(q.Get("status"))
		severity := types.Severity(q.Get("severity"))

		result, err := engine.List(ctx, status, severity)
		if err != nil {
			writeError(w, requestLogger, err, "unable to fetch alerts")
			return
		}

		writeResponse(w, http.StatusOK, newListResponse(result))
	}
}

func raiseAlertHandler(log *slog.Logger, registry sensors.SensorRegistry, engine alerts.AlertEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "raise-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req alertRequest
		err = decodeBody(r, &req)
		if err != nil {
			writeError(w, requestLogger, err, "unable to unmarshal body")
			return
		}

		if strings.TrimSpace(req.SensorID) == "" {
			err = fmt.Errorf("%w: sensorId is required", types.ErrValidation)
			writeError(w, requestLogger, err, "missing sensor id")
			return
		}

		sensor, err := registry.Get(ctx, req.SensorID)
		if err != nil {
			writeError(w, requestLogger, err, "could not fetch sensor")
			return
		}

		message := req.Message
		if message == "" {
			message = alerts.MessageFor(req.Severity)
		}

		id, err := engine.Raise(ctx, sensor.ID, sensor.Name, req.Severity, req.Level, message)
		if err != nil {
			writeError(w, requestLogger, err, "unable to raise alert")
			return
		}

		alert, err := engine.Get(ctx, id)
		if err != nil {
			writeError(w, requestLogger, err, "unable to fetch raised alert")
			return
		}

		w.Header().Add("Location", "/api/v0/alerts/"+id)
		writeResponse(w, http.StatusCreated, ApiResponse{Data: alert})
	}
}

func getAlertHandler(log *slog.Logger, engine alerts.AlertEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		requestLogger = requestLogger.With(slog.String("alert_id", alertID))

		alert, err := engine.Get(ctx, alertID)
		if err != nil {
			writeError(w, requestLogger, err, "could not fetch alert")
			return
		}

		writeResponse(w, http.StatusOK, ApiResponse{Data: alert})
	}
}

func patchAlertHandler(log *slog.Logger, engine alerts.AlertEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "acknowledge-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		requestLogger = requestLogger.With(slog.String("alert_id", alertID))

		var patch alertPatch
		err = decodeBody(r, &patch)
		if err != nil {
			writeError(w, requestLogger, err, "unable to unmarshal body")
			return
		}

		if patch.Status != types.AlertStatusAcknowledged {
			err = fmt.Errorf("%w: alerts can only be acknowledged", types.ErrValidation)
			writeError(w, requestLogger, err, "unsupported alert patch")
			return
		}

		alert, err := engine.Acknowledge(ctx, alertID)
		if err != nil {
			writeError(w, requestLogger, err, "unable to acknowledge alert")
			return
		}

		writeResponse(w, http.StatusOK, ApiResponse{Data: alert})
	}
}

func overviewHandler(log *slog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-overview")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		overview, err := app.Overview(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "unable to compute overview")
			return
		}

		writeResponse(w, http.StatusOK, ApiResponse{Data: overview})
	}
}

func resetHandler(log *slog.Logger, svc admin.Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "reset-data")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = svc.Reset(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "unable to reset data")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// seedSensorsHandler accepts a csv file either as a multipart upload named fileupload or as the raw body.
func seedSensorsHandler(log *slog.Logger, svc admin.Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "seed-sensors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var data io.Reader = http.MaxBytesReader(w, r.Body, maxUploadSize)

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			err = r.ParseMultipartForm(maxUploadSize)
			if err != nil {
				writeError(w, requestLogger, fmt.Errorf("%w: %w", types.ErrValidation, err), "unable to parse multipart form")
				return
			}

			var file multipart.File
			file, _, err = r.FormFile("fileupload")
			if err != nil {
				writeError(w, requestLogger, fmt.Errorf("%w: %w", types.ErrValidation, err), "missing file upload")
				return
			}
			defer file.Close()

			data = file
		}

		created, err := svc.Seed(ctx, data)
		if err != nil {
			writeError(w, requestLogger, err, "unable to seed sensors")
			return
		}

		writeResponse(w, http.StatusCreated, ApiResponse{Data: map[string]int{"created": created}})
	}
}

func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrValidation, err)
	}

	return nil
}

func parseStatuses(q string) ([]types.Status, error) {
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}

	statuses := lo.Uniq(lo.Map(strings.Split(q, ","), func(s string, _ int) types.Status {
		return types.Status(strings.TrimSpace(s))
	}))

	for _, s := range statuses {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", types.ErrValidation, s)
		}
	}

	return statuses, nil
}

func wantsGeoJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/geo+json")
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, sensors.ErrSensorNotFound), errors.Is(err, alerts.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, sensors.ErrDuplicateSiteID), errors.Is(err, sensors.ErrAmbiguousSiteID):
		return http.StatusConflict
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error, msg string) {
	code := statusCode(err)

	if code == http.StatusInternalServerError {
		log.Error(msg, "err", err.Error())
	} else {
		log.Debug(msg, "err", err.Error())
	}

	http.Error(w, err.Error(), code)
}

func writeResponse(w http.ResponseWriter, code int, response ApiResponse) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response.Byte())
}
