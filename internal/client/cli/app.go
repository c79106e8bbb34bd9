package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/packadmin/internal/client/auth"
	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/client/config"
	"github.com/dmitrijs2005/packadmin/internal/client/listview"
	"github.com/dmitrijs2005/packadmin/internal/client/repositories/journal"
	"github.com/dmitrijs2005/packadmin/internal/client/selection"
	"github.com/dmitrijs2005/packadmin/internal/client/services"
	"github.com/dmitrijs2005/packadmin/internal/common"
	"github.com/dmitrijs2005/packadmin/internal/filex"
	"github.com/dmitrijs2005/packadmin/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// journalKeep bounds the number of journal entries kept across runs.
const journalKeep = 1000

type App struct {
	config    *config.Config
	inventory services.InventoryService
	logger    logging.Logger
	db        *sql.DB

	reader *bufio.Reader
	out    io.Writer

	mode     atomic.Value
	userName string

	view   viewName
	views  map[viewName]*listview.State
	review selection.ImageReview
}

// NewApp builds the console from configuration: the HTTP client, the
// optional journal database and the inventory service.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	opts := []client.Option{client.WithTimeout(c.RequestTimeout)}
	if c.SessionToken != "" {
		opts = append(opts, client.WithSessionToken(c.SessionToken))
	}
	apiClient, err := client.NewHTTPClient(c.ServerURL, opts...)
	if err != nil {
		return nil, err
	}

	var (
		db   *sql.DB
		repo journal.Repository
	)
	if c.JournalDSN != "" {
		if _, err = filex.EnsureParentDir(c.JournalDSN); err == nil {
			db, err = client.InitDatabase(ctx, c.JournalDSN)
		}
		if err != nil {
			logger.Warn(ctx, "journal disabled", "dsn", c.JournalDSN, "error", err)
		} else {
			if n, err := journal.Trim(ctx, db, journalKeep); err != nil {
				logger.Warn(ctx, "error trimming journal", "error", err)
			} else if n > 0 {
				logger.Debug(ctx, "journal trimmed", "removed", n)
			}
			repo = journal.NewSQLiteRepository(db)
		}
	}

	inv := services.NewInventoryService(apiClient, repo, logger)

	a := newApp(c, inv, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	a.inspectSession(ctx, time.Now())
	return a, nil
}

func newApp(c *config.Config, inv services.InventoryService, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	a := &App{
		config:    c,
		inventory: inv,
		logger:    logger,
		reader:    r,
		out:       w,
		view:      viewPacks,
		views:     newViews(c.PageSize),
	}
	a.mode.Store(Mode(""))
	return a
}

// inspectSession reads the configured session token to show the user
// name and warn about expiry. The token is sent regardless.
func (a *App) inspectSession(ctx context.Context, now time.Time) {
	if a.config.SessionToken == "" {
		return
	}
	s, err := auth.Inspect(a.config.SessionToken, now)
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		a.logger.Warn(ctx, "session token expired", "expired_at", s.ExpiresAt)
	case err != nil:
		a.logger.Warn(ctx, "session token unreadable", "error", err)
		return
	case s.ExpiresWithin(now, 24*time.Hour):
		a.logger.Warn(ctx, "session token expires soon", "expires_at", s.ExpiresAt)
	}
	a.userName = s.Username
	if a.userName == "" {
		a.userName = s.Subject
	}
}

func (a *App) getMode() Mode {
	m, _ := a.mode.Load().(Mode)
	return m
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.mode.Swap(mode) != mode {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

// Run loads every collection and starts the REPL. It blocks until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to packadmin (type 'help' for commands)")
	_ = a.Refresh(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// StartOnlineStatusWatcher pings the data service every interval and
// flips the mode shown in the prompt. It only informs; nothing is queued
// while offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.inventory.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := string(a.view)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	if m := a.getMode(); m != "" {
		s = s + " " + string(m)
	}
	if id, ok := a.review.PackID(); ok {
		s = fmt.Sprintf("%s images:%d", s, id)
	}
	return fmt.Sprintf("(%s)", s)
}
