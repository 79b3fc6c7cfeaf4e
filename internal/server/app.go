// Package server initializes and runs the storefront API server. It selects
// a storage backend, wires the services, and serves HTTP with graceful
// shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shopsync/internal/logging"
	"github.com/dmitrijs2005/shopsync/internal/server/config"
	"github.com/dmitrijs2005/shopsync/internal/server/httpapi"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopsync/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	var (
		rm  repomanager.RepositoryManager
		err error
	)
	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN, using in-memory store")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		rm, err = repomanager.NewPostgresRepositoryManager(context.Background(), c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	secret := []byte(c.SecretKey)
	us := services.NewUsersService(rm.Users(), secret, c.TokenValidityDuration)
	ords := services.NewOrdersService(rm.Orders())
	cs := services.NewCollectionsService(rm.Collections())

	server := httpapi.NewServer(c.EndpointAddr, logger, us, ords, cs, secret)

	return &App{config: c, logger: logger, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
