package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"folio/app/internal/auth"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour

	issuer = "folio"
)

// AuthOptions configures an Authenticator.
type AuthOptions struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     *logrus.Logger
}

// Authenticator verifies admin accounts stored in SQLite and issues HS256 tokens.
type Authenticator struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *logrus.Logger
	now        func() time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

// NewAuthenticator constructs an Authenticator. Secret is required.
func NewAuthenticator(db *gorm.DB, opts AuthOptions) (*Authenticator, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, eris.New("jwt secret is required")
	}

	accessTTL := opts.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := opts.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}

	return &Authenticator{
		db:         db,
		secret:     []byte(opts.Secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     opts.Logger,
		now:        time.Now,
	}, nil
}

var _ auth.Authenticator = (*Authenticator)(nil)

// SeedAdmin creates the admin account or resets its password when it already exists.
func (a *Authenticator) SeedAdmin(ctx context.Context, email, password string) error {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" || password == "" {
		return eris.New("admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return eris.Wrap(err, "hashing admin password")
	}

	var record AdminRecord
	err = a.db.WithContext(ctx).First(&record, "email = ?", trimmed).Error
	switch {
	case err == nil:
		record.PasswordHash = string(hash)
		if err := a.db.WithContext(ctx).Save(&record).Error; err != nil {
			return eris.Wrap(err, "updating admin account")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = AdminRecord{Email: trimmed, PasswordHash: string(hash)}
		if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
			return eris.Wrap(err, "creating admin account")
		}
	default:
		return eris.Wrap(err, "looking up admin account")
	}

	if a.logger != nil {
		a.logger.WithField("email", trimmed).Info("admin account ready")
	}
	return nil
}

func (a *Authenticator) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))

	var record AdminRecord
	if err := a.db.WithContext(ctx).First(&record, "email = ?", trimmed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrap(auth.ErrInvalidCredentials, "unknown admin")
		}
		return nil, eris.Wrap(err, "looking up admin account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, eris.Wrap(auth.ErrInvalidCredentials, "password mismatch")
	}

	return a.issue(record)
}

func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	claims, err := a.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	var record AdminRecord
	if err := a.db.WithContext(ctx).First(&record, "id = ?", claims.Subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrap(auth.ErrNoSession, "admin no longer exists")
		}
		return nil, eris.Wrap(err, "looking up admin account")
	}

	return a.issue(record)
}

// SignOut is a no-op; tokens are stateless and expire on their own.
func (a *Authenticator) SignOut(context.Context, *auth.Session) error {
	return nil
}

// User implements auth.UserVerifier over the locally signed access tokens.
func (a *Authenticator) User(_ context.Context, accessToken string) (*auth.User, error) {
	return a.Verify(accessToken)
}

// Verify validates an access token and returns its user.
func (a *Authenticator) Verify(token string) (*auth.User, error) {
	claims, err := a.parse(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &auth.User{ID: claims.Subject, Email: claims.Email}, nil
}

func (a *Authenticator) issue(record AdminRecord) (*auth.Session, error) {
	now := a.now()
	accessExp := now.Add(a.accessTTL)

	access, err := a.sign(record, tokenTypeAccess, now, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, err := a.sign(record, tokenTypeRefresh, now, now.Add(a.refreshTTL))
	if err != nil {
		return nil, err
	}

	return &auth.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp.UTC(),
		User:         auth.User{ID: record.ID, Email: record.Email},
	}, nil
}

func (a *Authenticator) sign(record AdminRecord, kind string, now, exp time.Time) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}

	claims := tokenClaims{
		Email: record.Email,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   record.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", eris.Wrap(err, "signing token")
	}
	return signed, nil
}

func (a *Authenticator) parse(token, kind string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, eris.Wrap(auth.ErrNoSession, err.Error())
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Type != kind {
		return nil, eris.Wrap(auth.ErrNoSession, "invalid token claims")
	}
	return claims, nil
}
