// Package session owns the credential lifecycle of the EasyFlow client:
// login/register/logout, proactive expiry scheduling, periodic silent
// refresh, and the forced logout triggered by unauthorized responses. It is
// the only component that sets the API client's access token and the only
// registrant of its unauthorized handler.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/easyflowhq/easyflow/internal/client/api"
	"github.com/easyflowhq/easyflow/internal/client/models"
	"github.com/easyflowhq/easyflow/internal/client/store"
	"github.com/easyflowhq/easyflow/internal/dbx"
	"github.com/easyflowhq/easyflow/internal/logging"
)

// ErrNotAuthenticated is returned by Refresh when no refresh token is held.
var ErrNotAuthenticated = errors.New("not authenticated")

// DefaultRefreshInterval is the period of the silent refresh loop. The
// interval is configurable; deployments should keep it comfortably below
// the access-token TTL the backend issues.
const DefaultRefreshInterval = 5 * time.Minute

// MinRefreshInterval is the threshold below which a configured interval is
// considered suspicious and logged. Values this small hammer the refresh
// endpoint without buying any safety.
const MinRefreshInterval = 10 * time.Second

const expiredMessage = "Your session has expired. Please sign in again."

// Gateway is the slice of the API client the manager drives. *api.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, email, password, companyName string) (*api.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error

	SetAccessToken(ctx context.Context, token string) error
	AccessToken(ctx context.Context) (string, error)
	SetUnauthorizedHandler(fn func(message string))
}

// Config carries the constructor parameters for Manager.
type Config struct {
	Gateway Gateway

	// DB backs the durable session triple. The user record and refresh
	// token are written inside one transaction per state transition.
	DB *sql.DB

	Notifier Notifier
	Logger   logging.Logger

	// RefreshInterval overrides DefaultRefreshInterval when positive.
	RefreshInterval time.Duration
}

// Manager is the credential store and session scheduler. Construct exactly
// one per application and pass it by reference; Close it on teardown.
type Manager struct {
	gateway  Gateway
	db       *sql.DB
	notifier Notifier
	log      logging.Logger
	interval time.Duration

	mu           sync.Mutex
	user         *models.User
	refreshToken string
	expiryTimer  *time.Timer
	refreshStop  chan struct{}
}

func NewManager(cfg Config) *Manager {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	m := &Manager{
		gateway:  cfg.Gateway,
		db:       cfg.DB,
		notifier: notifier,
		log:      log,
		interval: interval,
	}

	if interval < MinRefreshInterval {
		log.Warn(context.Background(), "refresh interval is unusually short", "interval", interval)
	}

	m.gateway.SetUnauthorizedHandler(m.handleUnauthorized)
	return m
}

// IsAuthenticated reports whether a user record is held. It is derived
// state: no user means anonymous, whatever tokens may linger.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// User returns a copy of the authenticated user record, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Login authenticates and establishes a session. It reports success only;
// failures are logged so the UI can show a generic retry message without
// inspecting the error.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	resp, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		m.log.Error(ctx, "login failed", "error", err)
		return false
	}
	if err := m.applySession(ctx, resp); err != nil {
		m.log.Error(ctx, "failed to establish session", "error", err)
		return false
	}
	m.log.Info(ctx, "logged in", "email", resp.User.Email)
	return true
}

// Register creates an account and establishes a session, with the same
// success-only contract as Login.
func (m *Manager) Register(ctx context.Context, email, password, companyName string) bool {
	resp, err := m.gateway.Register(ctx, email, password, companyName)
	if err != nil {
		m.log.Error(ctx, "registration failed", "error", err)
		return false
	}
	if err := m.applySession(ctx, resp); err != nil {
		m.log.Error(ctx, "failed to establish session", "error", err)
		return false
	}
	m.log.Info(ctx, "registered", "email", resp.User.Email)
	return true
}

// Refresh exchanges the held refresh token for a new token pair and user
// record. Callers classify failures with api.IsUnauthorized.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.refreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		return ErrNotAuthenticated
	}

	resp, err := m.gateway.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	return m.applySession(ctx, resp)
}

// Logout ends the session: a best-effort remote call, then an unconditional
// local clear. It never fails and is idempotent; logging out while anonymous
// is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.user != nil
	m.mu.Unlock()

	if wasAuthenticated {
		if err := m.gateway.Logout(ctx); err != nil {
			// Remote failure must never block local cleanup.
			m.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	m.clear(ctx)

	if wasAuthenticated {
		m.log.Info(ctx, "logged out")
	}
}

// Restore hydrates a persisted session on startup. With a stored refresh
// token and user record present it arms the expiry timer against the stored
// access token, starts the refresh loop, and immediately refreshes once to
// validate the session before the user interacts with anything. Without a
// refresh token the application stays anonymous.
func (m *Manager) Restore(ctx context.Context) error {
	repo := store.NewSQLiteRepository(m.db)

	userRaw, err := repo.Get(ctx, store.KeyUser)
	if err != nil {
		return err
	}
	refreshRaw, err := repo.Get(ctx, store.KeyRefreshToken)
	if err != nil {
		return err
	}

	if len(refreshRaw) == 0 || len(userRaw) == 0 {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		m.log.Warn(ctx, "stored user record is corrupt, discarding session", "error", err)
		m.clear(ctx)
		return nil
	}

	accessToken, err := m.gateway.AccessToken(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to load stored access token", "error", err)
	}

	m.mu.Lock()
	m.user = &user
	m.refreshToken = string(refreshRaw)
	m.armExpiryTimerLocked(accessToken)
	m.startRefreshLoopLocked()
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "email", user.Email)

	if err := m.Refresh(ctx); err != nil {
		if api.IsUnauthorized(err) {
			m.notifier.Notify(NoticeSessionExpired, expiredMessage)
			m.Logout(ctx)
			return nil
		}
		// Transient failure: keep the restored session, the periodic loop
		// will retry.
		m.log.Warn(ctx, "startup refresh failed", "error", err)
	}
	return nil
}

// Close cancels scheduled work and unregisters the unauthorized handler.
// It does not touch durable state, so the session survives a restart.
func (m *Manager) Close() {
	m.gateway.SetUnauthorizedHandler(nil)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}
	m.stopRefreshLoopLocked()
}

// applySession persists and installs a token pair + user record wholesale.
// Every path that changes session state funnels through here or clear, so a
// stale late response can overwrite but never partially corrupt the triple.
func (m *Manager) applySession(ctx context.Context, resp *api.AuthResponse) error {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, store.KeyUser, userJSON); err != nil {
			return err
		}
		return repo.Set(ctx, store.KeyRefreshToken, []byte(resp.RefreshToken))
	})
	if err != nil {
		return err
	}

	if err := m.gateway.SetAccessToken(ctx, resp.AccessToken); err != nil {
		return err
	}

	m.mu.Lock()
	user := resp.User
	m.user = &user
	m.refreshToken = resp.RefreshToken
	m.armExpiryTimerLocked(resp.AccessToken)
	m.startRefreshLoopLocked()
	m.mu.Unlock()
	return nil
}

// clear wipes the full triple, in memory and durably, and cancels scheduled
// work. Failures are logged: local cleanup must always complete.
func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}
	m.stopRefreshLoopLocked()
	m.user = nil
	m.refreshToken = ""
	m.mu.Unlock()

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, store.KeyUser); err != nil {
			return err
		}
		return repo.Delete(ctx, store.KeyRefreshToken)
	})
	if err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}

	if err := m.gateway.SetAccessToken(ctx, ""); err != nil {
		m.log.Error(ctx, "failed to clear access token", "error", err)
	}
}

// armExpiryTimerLocked schedules the proactive expiry alarm from the token's
// exp claim. At most one timer is armed: arming cancels the previous one.
// Tokens without a readable exp arm nothing, leaving expiry to be detected
// reactively through 401 responses.
func (m *Manager) armExpiryTimerLocked(accessToken string) {
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}

	exp, ok := tokenExpiry(accessToken)
	if !ok {
		return
	}

	d := time.Until(exp)
	if d < 0 {
		d = 0
	}
	m.expiryTimer = time.AfterFunc(d, m.expire)
}

func (m *Manager) expire() {
	m.notifier.Notify(NoticeSessionExpired, expiredMessage)
	m.Logout(context.Background())
}

func (m *Manager) startRefreshLoopLocked() {
	if m.refreshStop != nil {
		return
	}
	stop := make(chan struct{})
	m.refreshStop = stop
	go m.refreshLoop(stop)
}

func (m *Manager) stopRefreshLoopLocked() {
	if m.refreshStop != nil {
		close(m.refreshStop)
		m.refreshStop = nil
	}
}

// refreshLoop silently renews the session every interval. A 401 means the
// refresh token itself is dead, which forces a logout; anything else is
// treated as transient and only logged.
func (m *Manager) refreshLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err := m.Refresh(ctx)
			cancel()

			switch {
			case err == nil:
			case api.IsUnauthorized(err):
				m.notifier.Notify(NoticeSessionExpired, expiredMessage)
				m.Logout(context.Background())
				return
			default:
				m.log.Warn(context.Background(), "session refresh failed", "error", err)
			}
		}
	}
}

// handleUnauthorized is the single registered unauthorized callback: any
// domain call rejected with 401/403 lands here, notifies the user, and
// forces the logout sequence.
func (m *Manager) handleUnauthorized(message string) {
	m.notifier.Notify(NoticeUnauthorized, message)
	m.Logout(context.Background())
}
