package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound      = errors.New("no rows in result set")
	ErrTooManyRows   = errors.New("too many rows in result set")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNoID          = errors.New("data contains no id")
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s port=%s dbname=%s sslmode=%s", c.host, c.user, c.password, c.port, c.dbname, c.sslmode)
}

type ConnectorFunc func() (*gorm.DB, error)

func NewSQLiteConnector(ctx context.Context) ConnectorFunc {
	return func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})

		if err == nil {
			sqldb, _ := db.DB()
			sqldb.SetMaxOpenConns(1)
		}

		return db, err
	}
}

func NewPostgreSQLConnector(ctx context.Context, cfg Config) ConnectorFunc {
	log := logging.GetFromContext(ctx)

	return func() (*gorm.DB, error) {
		sublogger := log.With(
			slog.String("host", cfg.host),
			slog.String("database", cfg.dbname),
		)

		sublogger.Info("connecting to database host")

		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			TranslateError: true,
			Logger: logger.New(
				&logadapter{logger: sublogger},
				logger.Config{
					SlowThreshold:             time.Second,
					LogLevel:                  logger.Warn,
					IgnoreRecordNotFoundError: true,
					Colorful:                  false,
				},
			),
		})
		if err != nil {
			sublogger.Error("failed to connect to database", "err", err.Error())
			return nil, err
		}

		return db, nil
	}
}

// logadapter provides a Printf interface to the gorm logger
// so that we can forward the log data to slog
type logadapter struct {
	logger *slog.Logger
}

func (adapter *logadapter) Printf(format string, args ...interface{}) {
	adapter.logger.Info(fmt.Sprintf(format, args...))
}

type Storage struct {
	db  *gorm.DB
	seq atomic.Int64
}

func New(ctx context.Context, connect ConnectorFunc) (*Storage, error) {
	db, err := connect()
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// next returns a strictly increasing sequence number seeded from the wall clock
func (s *Storage) next() int64 {
	for {
		last := s.seq.Load()
		n := time.Now().UnixNano()
		if n <= last {
			n = last + 1
		}
		if s.seq.CompareAndSwap(last, n) {
			return n
		}
	}
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&sensor{}, &reading{}, &alert{})
}

// Reset removes every sensor, reading and alert in a single transaction.
func (s *Storage) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&alert{}, &reading{}, &sensor{}} {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) Close() {
	if sqldb, err := s.db.DB(); err == nil {
		sqldb.Close()
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	}
	return err
}
