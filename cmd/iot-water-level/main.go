package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/application"
	"github.com/diwise/iot-water-level/internal/pkg/application/telemetry"
	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/internal/pkg/presentation/api"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
)

const serviceName string = "iot-water-level"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	policiesFile
	configurationFile
	sensorsFile

	allowedOrigins

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		policiesFile:      "/opt/diwise/config/authz.rego",
		configurationFile: "/opt/diwise/config/config.yaml",
		sensorsFile:       "/opt/diwise/config/sensors.csv",

		allowedOrigins: "*",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "diwise",
		dbSSLMode:  "disable",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := application.LoadConfiguration(cfgFile)
	cfgFile.Close()
	exitIf(err, logger, "could not parse configuration file")

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	s, err := newStorage(ctx, flags)
	exitIf(err, logger, "could not create or connect to database")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, logger))
	exitIf(err, logger, "failed to init messenger")

	var sensors io.ReadCloser
	if f, err := os.Open(flags[sensorsFile]); err == nil {
		sensors = f
	} else {
		logger.Info("no sensors will be provisioned", "file", flags[sensorsFile], "err", err.Error())
	}

	app, r, err := initialize(ctx, flags, cfg, s, messenger, policies, sensors)
	exitIf(err, logger, "failed to initialize service")

	var bridge *telemetry.MQTTBridge
	if mqttCfg := telemetry.LoadMQTTConfiguration(ctx); mqttCfg.Broker != "" {
		bridge, err = telemetry.NewMQTTBridge(ctx, mqttCfg, app.Pipeline())
		exitIf(err, logger, "failed to create mqtt bridge")

		err = bridge.Start(ctx)
		exitIf(err, logger, "failed to start mqtt bridge", "broker", mqttCfg.Broker)
	}

	srv := &http.Server{
		Addr:              flags[listenAddress] + ":" + flags[servicePort],
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting to listen for connections", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitIf(err, logger, "failed to start request router")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv.Shutdown(shutdownCtx)

	if bridge != nil {
		bridge.Stop()
	}

	app.Stop()
	messenger.Close()
	s.Close()
}

func initialize(ctx context.Context, flags flagMap, cfg *application.Config, s *storage.Storage, messenger messaging.MsgContext, policies io.ReadCloser, sensors io.ReadCloser) (application.App, *chi.Mux, error) {
	defer policies.Close()

	log := logging.GetFromContext(ctx)

	err := s.Initialize(ctx)
	if err != nil {
		return nil, nil, err
	}

	app := application.New(s, messenger, cfg)

	if sensors != nil {
		defer sensors.Close()

		created, err := app.Admin().Seed(ctx, sensors)
		if err != nil {
			return nil, nil, err
		}
		log.Info("provisioned sensors", "created", created)
	}

	err = app.Start(ctx)
	if err != nil {
		return nil, nil, err
	}

	origins := strings.Split(flags[allowedOrigins], ",")
	r, err := api.RegisterHandlers(ctx, router.New(serviceName, origins...), policies, app)
	if err != nil {
		app.Stop()
		return nil, nil, err
	}

	return app, r, nil
}

// newStorage connects to PostgreSQL, or to an in memory sqlite database when no database host is configured.
func newStorage(ctx context.Context, flags flagMap) (*storage.Storage, error) {
	if flags[dbHost] == "" {
		logging.GetFromContext(ctx).Warn("no database host configured, using an in memory database")
		return storage.New(ctx, storage.NewSQLiteConnector(ctx))
	}

	cfg := storage.NewConfig(flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode])
	return storage.New(ctx, storage.NewPostgreSQLConnector(ctx, cfg))
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef(ctx, "CONFIG_FILE", flags[configurationFile])
	flags[sensorsFile] = envOrDef(ctx, "SENSORS_FILE", flags[sensorsFile])
	flags[allowedOrigins] = envOrDef(ctx, "ALLOWED_ORIGINS", flags[allowedOrigins])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("sensors", "a csv file with sensors to provision", apply(sensorsFile))
	flag.Func("config", "watchdog and notification configuration file", apply(configurationFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
