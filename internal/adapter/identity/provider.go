package identity

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kosthub/kosthub/internal/domain"
)

// Provider implements domain.IdentityProvider with credentials stored in
// SQLite and stateless HS256 session tokens. Tokens are self-contained, so
// SignOut is a no-op on the server side; the client discards the token.
type Provider struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
}

// Compile-time check: Provider implements domain.IdentityProvider.
var _ domain.IdentityProvider = (*Provider)(nil)

// New creates a provider backed by the given database. Tokens are signed
// with secret and expire after ttl.
func New(db *sql.DB, secret []byte, ttl time.Duration) *Provider {
	return &Provider{db: db, secret: secret, ttl: ttl}
}

// SignUp registers a new account. The email is stored lowercased so lookups
// are case-insensitive.
func (p *Provider) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return domain.User{}, fmt.Errorf("generating user id: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO auth_users (id, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, email, string(hash), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("inserting auth user: %w", err)
	}

	return domain.User{ID: id, Email: email}, nil
}

// SignIn checks the credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (p *Provider) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var id, hash string
	row := p.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM auth_users WHERE email = ?`, email)
	if err := row.Scan(&id, &hash); err != nil {
		if err == sql.ErrNoRows {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("looking up auth user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(p.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   id,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("signing token: %w", err)
	}

	return domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      domain.User{ID: id, Email: email},
	}, nil
}

// Verify parses the token and returns the account it belongs to.
func (p *Provider) Verify(ctx context.Context, token string) (domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return p.secret, nil
		})
	if err != nil || !parsed.Valid {
		return domain.User{}, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return domain.User{}, domain.ErrUnauthorized
	}

	var email string
	row := p.db.QueryRowContext(ctx,
		`SELECT email FROM auth_users WHERE id = ?`, claims.Subject)
	if err := row.Scan(&email); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, fmt.Errorf("looking up auth user: %w", err)
	}

	return domain.User{ID: claims.Subject, Email: email}, nil
}

// SignOut invalidates nothing server-side: tokens are stateless and simply
// expire. Kept on the interface so a revocation list can slot in later.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	return nil
}

func generateID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
