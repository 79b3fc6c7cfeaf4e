// Package httpapi exposes the storefront API over HTTP/JSON. Every
// authenticated route requires a bearer token; routes scoped to a user id
// additionally require the token to belong to that user.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopsync/internal/logging"
	"github.com/dmitrijs2005/shopsync/internal/server/services"
)

// Server holds the handler dependencies and the HTTP listener.
type Server struct {
	addr        string
	logger      logging.Logger
	users       *services.UsersService
	orders      *services.OrdersService
	collections *services.CollectionsService
	jwtSecret   []byte

	httpServer *http.Server
}

func NewServer(addr string, logger logging.Logger,
	users *services.UsersService, orders *services.OrdersService,
	collections *services.CollectionsService, jwtSecret []byte) *Server {

	s := &Server{
		addr:        addr,
		logger:      logger.With("component", "httpapi"),
		users:       users,
		orders:      orders,
		collections: collections,
		jwtSecret:   jwtSecret,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
