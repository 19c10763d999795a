// Package identity is the auth gateway: OAuth sign-in with external
// providers, local user records and session token issuance.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
)

// Gateway errors
var (
	ErrUnknownProvider = errors.New("unknown or unconfigured identity provider")
	ErrInvalidState    = errors.New("invalid or expired oauth state")
	ErrExchange        = errors.New("oauth code exchange failed")
	ErrUserInfo        = errors.New("fetching provider user info failed")
	ErrNotFound        = errors.New("user not found")
)

// User is a local account keyed by normalized email.
type User struct {
	ID          string
	Email       string
	Name        string
	Provider    string
	Picture     string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// Identity returns the session payload for u.
func (u *User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Provider: u.Provider, Picture: u.Picture}
}

// UserStore persists users.
type UserStore interface {
	// Upsert stores u by email. An existing user keeps its ID and CreatedAt.
	Upsert(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Login is a completed sign-in.
type Login struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Gateway runs OAuth sign-in and issues session tokens.
type Gateway struct {
	sessions   *auth.Sessions
	users      UserStore
	providers  map[string]*Provider
	httpClient *http.Client
	now        timeutil.Clock
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient sets the client used for token exchange and user-info calls.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = c }
}

// WithClock overrides the time source.
func WithClock(c timeutil.Clock) GatewayOption {
	return func(g *Gateway) { g.now = c }
}

// NewGateway creates a Gateway over the given providers.
func NewGateway(sessions *auth.Sessions, users UserStore, providers []*Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		sessions:   sessions,
		users:      users,
		providers:  make(map[string]*Provider, len(providers)),
		httpClient: http.DefaultClient,
		now:        timeutil.SystemClock,
	}
	for _, p := range providers {
		g.providers[p.Name] = p
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Providers lists the configured provider names.
func (g *Gateway) Providers() []string {
	out := make([]string, 0, len(g.providers))
	for _, name := range []string{Google, Microsoft, LinkedIn} {
		if _, ok := g.providers[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// LoginURL returns the provider consent URL carrying a signed state token.
func (g *Gateway) LoginURL(provider string) (string, error) {
	p, ok := g.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	state, err := g.sessions.IssueState(provider)
	if err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Callback completes sign-in: it verifies state, exchanges code, fetches the
// user's profile, upserts the local user and issues a session token.
func (g *Gateway) Callback(ctx context.Context, provider, code, state string) (*Login, error) {
	p, ok := g.providers[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}
	if err := g.sessions.VerifyState(state, provider); err != nil {
		return nil, ErrInvalidState
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		applog.LogWarn(ctx, "oauth exchange failed", zap.String("provider", provider), zap.Error(err))
		return nil, ErrExchange
	}
	info, err := g.fetchUserInfo(ctx, p, tok)
	if err != nil {
		applog.LogWarn(ctx, "oauth user info failed", zap.String("provider", provider), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUserInfo, err)
	}
	email := auth.NormalizeEmail(info.Email)
	if email == "" {
		return nil, auth.ErrNoEmail
	}

	now := g.now()
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.TrimSpace(info.GivenName + " " + info.FamilyName)
	}
	user, err := g.users.Upsert(ctx, &User{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        name,
		Provider:    provider,
		Picture:     info.Picture,
		CreatedAt:   now,
		LastLoginAt: now,
	})
	g.audit(ctx, email, provider, err)
	if err != nil {
		return nil, err
	}

	token, exp, err := g.sessions.Issue(user.Identity())
	if err != nil {
		return nil, err
	}
	return &Login{Token: token, ExpiresAt: exp, User: user}, nil
}

type userInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (g *Gateway) fetchUserInfo(ctx context.Context, p *Provider, tok *oauth2.Token) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.Config.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("user info status %d", resp.StatusCode)
	}
	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	return &info, nil
}

func (g *Gateway) audit(ctx context.Context, email, provider string, err error) {
	ev := applog.AuditEvent{
		Action:     "login",
		Actor:      email,
		Resource:   "user",
		ResourceID: email,
		Result:     applog.AuditSuccess,
		Details:    map[string]any{"provider": provider},
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details["error"] = "internal_error"
	}
	applog.LogAuditEvent(ctx, ev)
}
