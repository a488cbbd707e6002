package backend

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"folio/app/internal/auth"
	"folio/app/internal/db"
	"folio/app/internal/portfolio"
	"folio/app/internal/sqlstore"
	"folio/app/internal/supabase"
)

// Kind names a data backend strategy.
type Kind string

const (
	KindSupabase Kind = "supabase"
	KindSQLite   Kind = "sqlite"
	KindNull     Kind = "null"
)

// MissingCredentialsWarning is logged when the remote service cannot be configured.
const MissingCredentialsWarning = "supabase credentials missing, using null backend"

// Settings selects and configures the backend.
type Settings struct {
	Kind            Kind
	SupabaseURL     string
	SupabaseAnonKey string
	DBPath          string
	AdminEmail      string
	AdminPassword   string
	JWTSecret       string
}

// Backend bundles the content store and authenticator of the selected strategy.
type Backend struct {
	Kind  Kind
	Store portfolio.Store
	Auth  auth.Authenticator

	db *gorm.DB
}

// Select builds the backend once at startup. Without an explicit kind the remote
// service is used when both credentials are present, otherwise the null backend.
func Select(ctx context.Context, settings Settings, logger *logrus.Logger) (*Backend, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(string(settings.Kind))))
	hasCredentials := strings.TrimSpace(settings.SupabaseURL) != "" && strings.TrimSpace(settings.SupabaseAnonKey) != ""

	switch kind {
	case "", KindSupabase:
		if !hasCredentials {
			if logger != nil {
				logger.Warn(MissingCredentialsWarning)
			}
			return newNull(), nil
		}
		return newSupabase(settings, logger)
	case KindSQLite:
		return newSQLite(ctx, settings, logger)
	case KindNull:
		return newNull(), nil
	default:
		return nil, eris.Errorf("unknown data backend %q", settings.Kind)
	}
}

func newNull() *Backend {
	return &Backend{Kind: KindNull, Store: Null{}, Auth: Null{}}
}

func newSupabase(settings Settings, logger *logrus.Logger) (*Backend, error) {
	client, err := supabase.New(supabase.Options{
		URL:     settings.SupabaseURL,
		AnonKey: settings.SupabaseAnonKey,
		Logger:  logger,
	})
	if err != nil {
		return nil, eris.Wrap(err, "configuring supabase client")
	}

	return &Backend{Kind: KindSupabase, Store: client, Auth: client}, nil
}

func newSQLite(ctx context.Context, settings Settings, logger *logrus.Logger) (*Backend, error) {
	database, err := db.Open(db.Options{Path: settings.DBPath})
	if err != nil {
		return nil, eris.Wrap(err, "opening sqlite backend")
	}

	fail := func(err error, message string) (*Backend, error) {
		_ = db.Close(database)
		return nil, eris.Wrap(err, message)
	}

	if err := sqlstore.Migrate(ctx, database, logger); err != nil {
		return fail(err, "migrating sqlite backend")
	}

	store, err := sqlstore.NewStore(database, logger)
	if err != nil {
		return fail(err, "creating sqlite store")
	}

	authenticator, err := sqlstore.NewAuthenticator(database, sqlstore.AuthOptions{
		Secret: settings.JWTSecret,
		Logger: logger,
	})
	if err != nil {
		return fail(err, "creating sqlite authenticator")
	}

	if settings.AdminEmail != "" && settings.AdminPassword != "" {
		if err := authenticator.SeedAdmin(ctx, settings.AdminEmail, settings.AdminPassword); err != nil {
			return fail(err, "seeding admin account")
		}
	} else if logger != nil {
		logger.Warn("admin credentials not configured, sign-in needs an existing account")
	}

	return &Backend{Kind: KindSQLite, Store: store, Auth: authenticator, db: database}, nil
}

// Ping checks the backend connection where one exists.
func (b *Backend) Ping(ctx context.Context) error {
	if b == nil || b.db == nil {
		return nil
	}
	return db.Ping(ctx, b.db)
}

// Close releases backend resources.
func (b *Backend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return db.Close(b.db)
}
