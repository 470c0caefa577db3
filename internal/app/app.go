package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shan145/event-management-client/internal/service"
	"github.com/shan145/event-management-client/internal/store"
	"github.com/shan145/event-management-client/internal/store/drivers/sqlite"
	"github.com/shan145/event-management-client/pkg/cryptox"
	"github.com/shan145/event-management-client/pkg/eventsdk"
	"github.com/shan145/event-management-client/pkg/idx"
	"github.com/shan145/event-management-client/pkg/slogx"

	"log/slog"
)

// App wires the SDK, the local cache, and the transition services behind
// the CLI verbs.
type App struct {
	cfg    Config
	logger *slog.Logger
	store  store.Store
	client *eventsdk.SDKClient

	// session is nil until login or a successful resume from the cache.
	session *eventsdk.Session

	sessionKey []byte

	membership service.MembershipService
	rsvp       service.RSVPService
}

func New(cfg Config) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "eventable",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	key, err := loadOrCreateKey(cfg.SessionKeyFile)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	client := eventsdk.NewSDKClient(cfg.APIBaseURL)
	client.HTTPClient.Timeout = cfg.HTTPTimeout

	a := &App{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		client:     client,
		sessionKey: key,
	}
	a.resumeSession(context.Background())
	return a, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// Run dispatches one CLI invocation. Each action gets a correlation id so
// its log lines hang together.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	ctx := slogx.WithActionID(context.Background(), idx.New().String())
	ctx = slogx.WithContext(ctx, a.logger)

	verb, rest := args[0], args[1:]
	switch verb {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout(ctx)
	case "signup":
		return a.cmdSignup(ctx, rest)
	case "whoami":
		return a.cmdWhoami()
	case "groups":
		return a.cmdGroups(ctx)
	case "events":
		return a.cmdEvents(ctx, rest)
	case "rsvp":
		return a.cmdRSVP(ctx, rest)
	case "members":
		return a.cmdMembers(ctx, rest)
	case "leave":
		return a.cmdLeave(ctx, rest)
	case "invite":
		return a.cmdInvite(ctx, rest)
	case "chat":
		return a.cmdChat(ctx, rest)
	case "unread":
		return a.cmdUnread(ctx)
	case "tab":
		return a.cmdTab(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q\n%s", verb, usage)
	}
}

const usage = `usage: eventable <command>

  login <email>                       sign in (password read from stdin)
  signup <first> <last> <email>       create an account
  logout                              drop the stored session
  whoami                              show the signed-in identity
  groups                              list your groups
  events [--all|--past]               list events
  rsvp join <event>                   join an event's waitlist
  rsvp approve <event> <user>         approve a waitlisted user
  rsvp deny <event> <user>            move a user to not-going
  rsvp waitlist <event> <user>        return a not-going user to the waitlist
  rsvp nogo <event> [user]            mark not-going (self when user omitted)
  members add|remove|promote|demote <group> <user>
  leave <group>                       leave a group
  invite show <group>                 print the group's invite link token
  invite join <token>                 join a group via invite token
  chat <event>                        open the event chat (polls until ^C)
  unread                              show unread message counts
  tab admin|user [n]                  get or set the saved dashboard tab`

// resumeSession restores the previous session from the sealed token in
// the cache, if any. Failures just leave the app signed out.
func (a *App) resumeSession(ctx context.Context) {
	sealed, err := a.store.Sessions().GetToken(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("failed to read stored session", slog.Any("error", err))
		}
		return
	}

	token, err := cryptox.Open(a.sessionKey, sealed)
	if err != nil {
		a.logger.Warn("stored session is unreadable, discarding", slog.Any("error", err))
		_ = a.store.Sessions().ClearToken(ctx)
		return
	}

	session, err := a.client.NewSessionFromToken(token)
	if err != nil {
		a.logger.Warn("stored session token is invalid, discarding", slog.Any("error", err))
		_ = a.store.Sessions().ClearToken(ctx)
		return
	}
	a.session = session
}

// saveSession seals the session token into the cache for the next run.
func (a *App) saveSession(ctx context.Context, session *eventsdk.Session) error {
	sealed, err := cryptox.Seal(a.sessionKey, session.Token())
	if err != nil {
		return err
	}
	if err := a.store.Sessions().SaveToken(ctx, sealed); err != nil {
		return err
	}
	a.session = session
	return nil
}

// requireSession guards authenticated verbs.
func (a *App) requireSession() error {
	if a.session == nil {
		return errors.New("not signed in; run: eventable login <email>")
	}
	return nil
}

// actor builds the permission-check identity for the signed-in user from
// the token claims plus the cached membership view.
func (a *App) actor(ctx context.Context) service.Actor {
	ident := a.session.Identity()

	var memberOf []string
	if groups, err := a.store.Groups().ListGroups(ctx); err == nil {
		for _, g := range groups {
			if g.IsMember(ident.UserID) {
				memberOf = append(memberOf, g.ID)
			}
		}
	}

	return service.Actor{
		ID:            ident.UserID,
		Role:          ident.Role,
		Groups:        memberOf,
		GroupAdminOf:  ident.GroupAdminOf,
		Authenticated: true,
	}
}

// refresh replaces the cached groups and events with a fresh server
// snapshot, atomically.
func (a *App) refresh(ctx context.Context) error {
	groups, err := a.session.ListUserGroups(ctx)
	if err != nil {
		return err
	}
	events, err := a.session.ListUserEvents(ctx)
	if err != nil {
		return err
	}

	return a.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Groups().ReplaceGroups(ctx, toDomainGroups(groups)); err != nil {
			return err
		}
		return tx.Events().ReplaceEvents(ctx, toDomainEvents(events))
	})
}

// loadOrCreateKey reads the sealing key, minting one on first use.
func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("session key file %s is corrupt", path)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read session key: %w", err)
	}

	key, err = cryptox.NewKey()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write session key: %w", err)
	}
	return key, nil
}
