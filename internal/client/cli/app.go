// Package cli is the interactive storefront client: a small REPL over the
// session manager, the collection synchronizer and the order ledger.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/shopsync/internal/client/config"
	"github.com/dmitrijs2005/shopsync/internal/client/credentials"
	"github.com/dmitrijs2005/shopsync/internal/client/orders"
	"github.com/dmitrijs2005/shopsync/internal/client/repositories"
	"github.com/dmitrijs2005/shopsync/internal/client/session"
	"github.com/dmitrijs2005/shopsync/internal/client/syncer"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	creds   *credentials.Store
	session *session.Manager
	sync    *syncer.Synchronizer
	ledger  *orders.Ledger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewJSON(os.Stderr)

	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	creds := credentials.NewStore(repos.Metadata, logger)
	if err := creds.Load(ctx); err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	api := transport.NewClient(c.ServerBaseURL, creds, c.RequestTimeout, logger)

	app := &App{
		config:  c,
		logger:  logger,
		creds:   creds,
		session: session.NewManager(api, creds, logger),
		sync:    syncer.New(api, logger),
		ledger:  orders.NewLedger(api, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) {
	// A restart with a persisted token resumes the previous session; the
	// collections are reloaded from the server before any push can happen.
	if identity := a.session.Identity(); identity != nil {
		if err := a.sync.Activate(ctx, identity.ID); err != nil {
			fmt.Fprintln(a.out, "Stored session is no longer valid, please log in again.")
		} else {
			fmt.Fprintf(a.out, "Welcome back, %s\n", identity.Email)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	a.sync.Wait()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) status() string {
	if identity := a.session.Identity(); identity != nil {
		return identity.Email
	}
	return "not logged in"
}
