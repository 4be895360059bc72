// Package session owns the authentication lifecycle: login with optional MFA, the
// bearer token, the cached user profile, and every call that needs the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
	"github.com/finsec/cli/internal/utils"
)

// State is a node of the authentication state machine
type State int

const (
	Unauthenticated State = iota
	MfaPending
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case MfaPending:
		return "mfa_pending"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	ErrNotAuthenticated     = errors.New("not logged in")
	ErrMfaPending           = errors.New("verification code required to complete login")
	ErrMfaNotPending        = errors.New("no login is waiting for a verification code")
	ErrAlreadyAuthenticated = errors.New("already logged in")
)

// Backend is the remote banking API as seen by the session
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	VerifyMfa(ctx context.Context, req models.VerifyMfaRequest) (*models.LoginResponse, error)
	GenerateMfaSecret(ctx context.Context, userID models.ID) (*models.MfaSecret, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.MessageResponse, error)
	GetCards(ctx context.Context, token string) ([]models.Card, error)
	GetCard(ctx context.Context, token string, id models.ID) (*models.CardDetails, error)
	GetTransactions(ctx context.Context, token string, q models.TransactionQuery) (*models.TransactionPage, error)
	GetBills(ctx context.Context, token string) ([]models.Bill, error)
	PayBill(ctx context.Context, token string, req models.PayBillRequest) (*models.PayBillResponse, error)
	GetSpending(ctx context.Context, token, period string) ([]models.SpendingCategory, error)
	GetNotifications(ctx context.Context, token string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, token string, id models.ID) error
}

type pendingCredentials struct {
	UserID   models.ID
	Email    string
	Password string
}

// LoginResult reports where a successful Login left the session
type LoginResult struct {
	State State
	// MfaSetupRecommended is set when the account has no second factor enrolled.
	MfaSetupRecommended bool
}

// Manager is the single owner of the session. It is safe for concurrent readers.
type Manager struct {
	backend   Backend
	store     Store
	policy    movement.Policy
	logger    zerolog.Logger
	onSignOut func()

	mu      sync.RWMutex
	state   State
	token   string
	user    models.UserProfile
	pending *pendingCredentials
}

// Option configures a Manager
type Option func(*Manager)

// WithStore persists the session across processes
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithPolicy sets the money-movement thresholds used by PayBill
func WithPolicy(p movement.Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithSignOutHook registers a callback run after every SignOut
func WithSignOutHook(fn func()) Option {
	return func(m *Manager) { m.onSignOut = fn }
}

// New creates a Manager in the Unauthenticated state
func New(backend Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		policy:  movement.DefaultPolicy(),
		logger:  zerolog.Nop(),
		state:   Unauthenticated,
		user:    models.DefaultUserProfile(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login validates the credentials locally and then authenticates against the API.
// Accounts with MFA move to MfaPending; all others are Authenticated right away.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return LoginResult{}, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return LoginResult{}, err
	}
	if m.State() == Authenticated {
		return LoginResult{}, ErrAlreadyAuthenticated
	}

	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	if resp.RequireMfa {
		if resp.UserID == "" {
			return LoginResult{}, fmt.Errorf("login response requires MFA but carries no user id")
		}
		m.mu.Lock()
		m.state = MfaPending
		m.token = ""
		m.pending = &pendingCredentials{UserID: resp.UserID, Email: email, Password: password}
		m.mu.Unlock()

		m.logger.Debug().Str("user_id", resp.UserID.String()).Msg("login awaiting verification code")
		return LoginResult{State: MfaPending}, nil
	}

	user, err := m.establish(resp, email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{State: Authenticated, MfaSetupRecommended: !user.MfaEnabled}, nil
}

// VerifyMfa completes a pending login with a 6-digit code. Failures leave the login
// pending so the code can be retried.
func (m *Manager) VerifyMfa(ctx context.Context, code string) error {
	m.mu.RLock()
	state, pending := m.state, m.pending
	m.mu.RUnlock()

	if state != MfaPending || pending == nil {
		return ErrMfaNotPending
	}
	if err := utils.ValidateOTP(code); err != nil {
		return err
	}

	resp, err := m.backend.VerifyMfa(ctx, models.VerifyMfaRequest{
		UserID:   pending.UserID,
		OtpCode:  code,
		Email:    pending.Email,
		Password: pending.Password,
	})
	if err != nil {
		return err
	}
	if resp.User == nil {
		resp.User = &models.User{ID: pending.UserID, Email: pending.Email, IsActive: true, MfaEnabled: true}
	}

	_, err = m.establish(resp, pending.Email)
	return err
}

// establish promotes the session to Authenticated. The session is persisted before any
// in-memory state changes.
func (m *Manager) establish(resp *models.LoginResponse, email string) (models.User, error) {
	if resp.AccessToken == "" || resp.User == nil {
		return models.User{}, utils.NewAPIError(http.StatusUnauthorized, "Authentication failed: no access token received", "")
	}
	user := *resp.User
	if user.Email == "" {
		user.Email = email
	}

	profile := models.DefaultUserProfile()
	profile.Apply(models.PatchFromUser(user))
	profile.LastLogin = time.Now()

	if m.store != nil {
		if err := m.store.SaveSession(Persisted{Token: resp.AccessToken, UserID: user.ID, Email: user.Email}); err != nil {
			return models.User{}, fmt.Errorf("failed to save session: %w", err)
		}
	}

	m.mu.Lock()
	m.state = Authenticated
	m.token = resp.AccessToken
	m.user = profile
	m.pending = nil
	m.mu.Unlock()

	m.logger.Debug().Str("user_id", user.ID.String()).Msg("session authenticated")
	return user, nil
}

// Restore resumes a persisted session. An empty token leaves the session untouched.
func (m *Manager) Restore(token string, profile models.UserProfile) {
	if token == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Authenticated
	m.token = token
	m.user = profile.Clone()
	m.pending = nil
}

// SignOut forgets the token, profile and any pending login. Calling it again is harmless.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.state = Unauthenticated
	m.token = ""
	m.user = models.DefaultUserProfile()
	m.pending = nil
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.ClearSession(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to clear saved session")
		}
	}
	m.logger.Debug().Msg("signed out")
	if m.onSignOut != nil {
		m.onSignOut()
	}
}

// Logout tells the server the session is over, then signs out locally. The server call
// is best effort.
func (m *Manager) Logout(ctx context.Context) {
	if token := m.Token(); token != "" {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.logger.Warn().Err(err).Msg("server logout failed")
		}
	}
	m.SignOut()
}

// RefreshProfile re-reads the profile from the server. Errors are logged, not returned.
func (m *Manager) RefreshProfile(ctx context.Context) {
	if err := m.ReloadProfile(ctx); err != nil && !errors.Is(err, ErrNotAuthenticated) {
		m.logger.Warn().Err(err).Msg("profile refresh failed")
	}
}

// ReloadProfile is RefreshProfile for callers that need the error. A response that
// arrives after the session changed is dropped.
func (m *Manager) ReloadProfile(ctx context.Context) error {
	token := m.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	pr, err := m.backend.GetProfile(ctx, token)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != token {
		return nil
	}
	m.user.Apply(models.PatchFromProfile(*pr))
	return nil
}

// UpdateUser merges patch into the cached profile
func (m *Manager) UpdateUser(patch models.ProfilePatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user.Apply(patch)
}

// UpdateCardBalance sets the cached balance of one card. Call it only with a balance the
// server has confirmed. It reports whether the card was found.
func (m *Manager) UpdateCardBalance(cardID models.ID, balance decimal.Decimal) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.user.Cards {
		if m.user.Cards[i].ID == cardID {
			m.user.Cards[i].Balance = balance
			return true
		}
	}
	return false
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the bearer token, empty unless Authenticated
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Profile returns a copy of the cached profile
func (m *Manager) Profile() models.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// MfaPending reports whether a login is waiting for its verification code
func (m *Manager) MfaPending() bool {
	return m.State() == MfaPending
}

// RequireAuthenticated fails with ErrMfaPending or ErrNotAuthenticated unless the
// session is signed in
func (m *Manager) RequireAuthenticated() error {
	_, err := m.authToken()
	return err
}

// authToken returns the token for an authenticated call
func (m *Manager) authToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch m.state {
	case Authenticated:
		return m.token, nil
	case MfaPending:
		return "", ErrMfaPending
	default:
		return "", ErrNotAuthenticated
	}
}
