package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/config"
	"github.com/dmitrijs2005/melodydiary/internal/enhancer"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/services"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
)

// InviteBase is the address invite links point at.
const InviteBase = "https://melody.pink.diary/"

// App is the terminal front end. It owns the state containers and is the
// only code that calls their mutating operations.
type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	store    *storage.Store
	enhancer enhancer.Enhancer

	access   services.AccessService
	profiles services.ProfileService
	entries  services.EntryService
	social   services.SocialService
	chat     services.ChatService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, builds every container and applies the
// startup steps: demo seeding and the invite link from the command line.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, db, err := storage.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	var enh enhancer.Enhancer = enhancer.NopEnhancer{}
	if g, err := enhancer.NewGeminiEnhancer(ctx, c.EnhancerAPIKey, c.EnhancerModel, logger); err != nil {
		logger.Warn(ctx, "text enhancer disabled", "error", err)
	} else {
		enh = g
	}

	a := newApp(ctx, c, store, enh, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db

	if err := a.startup(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, store *storage.Store, enh enhancer.Enhancer,
	logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:   c,
		logger:   logger,
		store:    store,
		enhancer: enh,
		reader:   reader,
		out:      out,
	}
	a.wire(ctx)
	return a
}

// wire (re)builds the containers from what the store holds right now.
func (a *App) wire(ctx context.Context) {
	a.profiles = services.NewProfileService(ctx, a.store, a.logger)
	a.access = services.NewAccessService(ctx, a.store, a.profiles,
		services.Codes{Access: a.config.AccessCode, Admin: a.config.AdminCode}, a.logger)
	a.entries = services.NewEntryService(ctx, a.store, a.profiles, a.logger)
	a.social = services.NewSocialService(ctx, a.store, a.profiles, a.entries, a.config.InvitePolicy, a.logger)
	a.chat = services.NewChatService(a.profiles)
}

func (a *App) startup(ctx context.Context) error {
	if a.config.SeedDemo {
		if err := services.SeedDemo(ctx, a.profiles, a.entries, a.social); err != nil {
			a.logger.Warn(ctx, "failed to seed demo data", "error", err)
		}
	}

	if a.config.InviteLink != "" {
		ok, err := a.access.UnlockFromInvite(ctx, a.config.InviteLink)
		switch {
		case errors.Is(err, common.ErrWrongCode):
			a.println("That invite link has the wrong secret code 🍬")
		case err != nil:
			return err
		case ok:
			a.println("Invite accepted, welcome in! 🎀")
		}
	}
	return nil
}

// Run prints the greeting and serves commands until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to Melody Diary 🎀 (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isUnlocked() bool {
	return a.access.Unlocked()
}

func (a *App) hasProfile() bool {
	_, ok := a.profiles.Current()
	return ok
}

func (a *App) getStatus() string {
	switch {
	case !a.isUnlocked():
		return "(locked)"
	case !a.hasProfile():
		return "(guest)"
	}

	me, _ := a.profiles.Current()
	if me.IsAdmin {
		return fmt.Sprintf("(%s ★admin)", me.Username)
	}
	return fmt.Sprintf("(%s)", me.Username)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report presents err to the user according to its kind and returns it
// unchanged.
//
// Wrong codes get a retry hint, validation failures are silent, refusals
// print an "Error:" line and anything else is a storage problem that is
// only logged: the in-memory state already holds the change.
func (a *App) report(ctx context.Context, op string, err error) error {
	switch {
	case err == nil:
	case errors.Is(err, common.ErrEmptyInput):
		a.logger.Debug(ctx, op+" ignored", "error", err)
	case errors.Is(err, common.ErrWrongCode):
		a.println("Oops! That's not the secret code 🍬 Try again.")
	case errors.Is(err, common.ErrNotConfirmed):
		a.println("Cancelled.")
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrForbidden),
		errors.Is(err, common.ErrSelfRemoval),
		errors.Is(err, common.ErrNoProfile),
		errors.Is(err, common.ErrNameTaken),
		errors.Is(err, common.ErrInvalidVisibility),
		errors.Is(err, common.ErrGroupRequired):
		a.println("Error:", err)
	default:
		a.logger.Error(ctx, op+" failed", "error", err)
	}
	return err
}
