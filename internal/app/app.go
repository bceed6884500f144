// Package app wires configuration into the console's services.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/hms-console/internal/api/rest"
	"github.com/dtroode/hms-console/internal/config"
	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
	"github.com/dtroode/hms-console/internal/service"
	"github.com/dtroode/hms-console/internal/storage/local"
	minioStorage "github.com/dtroode/hms-console/internal/storage/minio"
	pgStorage "github.com/dtroode/hms-console/internal/storage/postgres"
	redisStorage "github.com/dtroode/hms-console/internal/storage/redis"
	"github.com/dtroode/hms-console/internal/token"
)

type App struct {
	Config *config.Config
	Logger *logger.Logger
	Auth   *service.Auth
	Client *rest.Client
	Loader *service.Loader

	closers []func() error
}

// New builds the credential store on the configured backend and the remote
// client. Close releases the backend connections.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	storage, err := a.newStorage(ctx)
	if err != nil {
		return nil, err
	}
	a.Auth = service.NewAuth(storage, token.NewJWT(cfg.Auth.SessionSecret), logger, cfg.Auth.BcryptCost)

	httpClient, err := rest.NewHTTPClient(cfg.API.Timeout, cfg.API.CAFile, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	a.Client, err = rest.NewClient(cfg.API.BaseURL, logger, rest.WithHTTPClient(httpClient))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	a.Loader = service.NewLoader(a.Client.Patients, a.Client.Appointments, a.Client.Records, logger, cfg.Dashboard.FanoutLimit)

	return a, nil
}

// NewDashboard returns a controller over the app's remote client. The
// caller closes it.
func (a *App) NewDashboard() *dashboard.Controller {
	return dashboard.NewController(a.Loader, dashboard.Remote{
		Patients:     a.Client.Patients,
		Appointments: a.Client.Appointments,
		Records:      a.Client.Records,
		Health:       a.Client,
	}, a.Logger, dashboard.Options{
		MessageTTL:    a.Config.Dashboard.MessageTTL,
		ProbeInterval: a.Config.Dashboard.ProbeInterval,
	})
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) newStorage(ctx context.Context) (model.Storage, error) {
	cfg := a.Config

	a.Logger.Debug("App: initializing storage",
		"backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.BackendFile:
		s, err := local.NewStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return s, nil

	case config.BackendRedis:
		s, client, err := redisStorage.NewStore(ctx, redisStorage.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis storage: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return s, nil

	case config.BackendMinio:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		s, err := minioStorage.NewClient(ctx, client, cfg.Minio.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		return s, nil

	case config.BackendPostgres:
		conn, err := pgStorage.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		return pgStorage.NewStore(conn.DB), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
