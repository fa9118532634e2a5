package session

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/easyflowhq/easyflow/internal/client/api"
	"github.com/easyflowhq/easyflow/internal/client/models"
	"github.com/easyflowhq/easyflow/internal/client/store"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func getKey(t *testing.T, db *sql.DB, key string) []byte {
	t.Helper()
	v, err := store.NewSQLiteRepository(db).Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func seedKey(t *testing.T, db *sql.DB, key string, value []byte) {
	t.Helper()
	require.NoError(t, store.NewSQLiteRepository(db).Set(context.Background(), key, value))
}

// makeToken builds an unsigned JWT-shaped token whose payload carries the
// given claims. The manager never verifies signatures, so "sig" suffices.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func expiringToken(t *testing.T, in time.Duration) string {
	t.Helper()
	exp := float64(time.Now().Add(in).UnixNano()) / float64(time.Second)
	return makeToken(t, map[string]any{"exp": exp})
}

func authResponse(access, refresh, email string) *api.AuthResponse {
	return &api.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         models.User{ID: "1", Email: email, Plan: models.PlanStarter},
	}
}

// ---- fake gateway ----

type fakeGateway struct {
	mu sync.Mutex

	LoginResp    *api.AuthResponse
	LoginErr     error
	RegisterResp *api.AuthResponse
	RegisterErr  error
	RefreshResp  *api.AuthResponse
	RefreshErr   error
	RefreshDelay time.Duration
	LogoutErr    error
	LogoutDelay  time.Duration

	accessToken string
	handler     func(message string)

	LoginCalls       int
	RegisterCalls    int
	RefreshCalls     int
	LogoutCalls      int
	LastRefreshToken string
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginResp, f.LoginErr
}

func (f *fakeGateway) Register(ctx context.Context, email, password, companyName string) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeGateway) Refresh(ctx context.Context, refreshToken string) (*api.AuthResponse, error) {
	f.mu.Lock()
	delay := f.RefreshDelay
	f.RefreshCalls++
	f.LastRefreshToken = refreshToken
	resp, err := f.RefreshResp, f.RefreshErr
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return resp, err
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.mu.Lock()
	delay := f.LogoutDelay
	f.LogoutCalls++
	err := f.LogoutErr
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *fakeGateway) SetAccessToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = token
	return nil
}

func (f *fakeGateway) AccessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken, nil
}

func (f *fakeGateway) SetUnauthorizedHandler(fn func(message string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = fn
}

func (f *fakeGateway) currentHandler() func(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler
}

func (f *fakeGateway) token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken
}

func (f *fakeGateway) logoutCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LogoutCalls
}

func (f *fakeGateway) refreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RefreshCalls
}

// ---- recording notifier ----

type notice struct {
	kind    Notice
	message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) Notify(kind Notice, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{kind: kind, message: message})
}

func (n *recordingNotifier) all() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notice(nil), n.notices...)
}

func newManager(t *testing.T, fc *fakeGateway, db *sql.DB, nt Notifier, interval time.Duration) *Manager {
	t.Helper()
	m := NewManager(Config{
		Gateway:         fc,
		DB:              db,
		Notifier:        nt,
		RefreshInterval: interval,
	})
	t.Cleanup(m.Close)
	return m
}

// ---- TESTS ----

func TestLogin_EstablishesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{LoginResp: authResponse("a1", "r1", "demo@test.com")}
	m := newManager(t, fc, db, nil, 0)

	ok := m.Login(context.Background(), "demo@test.com", "x")
	require.True(t, ok)

	require.True(t, m.IsAuthenticated())
	require.Equal(t, "demo@test.com", m.User().Email)
	require.Equal(t, "a1", fc.token())

	require.Equal(t, []byte("r1"), getKey(t, db, store.KeyRefreshToken))

	var storedUser models.User
	require.NoError(t, json.Unmarshal(getKey(t, db, store.KeyUser), &storedUser))
	require.Equal(t, "demo@test.com", storedUser.Email)
	require.Equal(t, models.PlanStarter, storedUser.Plan)
}

func TestLogin_FailureLeavesAnonymous(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{LoginErr: errors.New("bad credentials")}
	m := newManager(t, fc, db, nil, 0)

	require.False(t, m.Login(context.Background(), "demo@test.com", "wrong"))
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.Nil(t, getKey(t, db, store.KeyRefreshToken))
}

func TestRegister_EstablishesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{RegisterResp: authResponse("a1", "r1", "new@test.com")}
	m := newManager(t, fc, db, nil, 0)

	require.True(t, m.Register(context.Background(), "new@test.com", "pw", "Meine Firma"))
	require.True(t, m.IsAuthenticated())
	require.Equal(t, 1, fc.RegisterCalls)
}

func TestLogout_IsIdempotent(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{LoginResp: authResponse("a1", "r1", "demo@test.com")}
	m := newManager(t, fc, db, nil, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))

	m.Logout(context.Background())
	m.Logout(context.Background())

	require.False(t, m.IsAuthenticated())
	require.Empty(t, fc.token())
	require.Nil(t, getKey(t, db, store.KeyUser))
	require.Nil(t, getKey(t, db, store.KeyRefreshToken))

	// The remote call happens only while a session exists.
	require.Equal(t, 1, fc.logoutCalls())
}

func TestLogout_RemoteFailureStillClears(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{
		LoginResp: authResponse("a1", "r1", "demo@test.com"),
		LogoutErr: errors.New("backend down"),
	}
	m := newManager(t, fc, db, nil, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))
	m.Logout(context.Background())

	require.False(t, m.IsAuthenticated())
	require.Nil(t, getKey(t, db, store.KeyRefreshToken))
}

func TestExpiry_TriggersLogoutOnce(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	fc := &fakeGateway{
		LoginResp: authResponse(expiringToken(t, 150*time.Millisecond), "r1", "demo@test.com"),
	}
	m := newManager(t, fc, db, nt, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))
	require.True(t, m.IsAuthenticated())

	require.Eventually(t, func() bool {
		return !m.IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond)

	// Give a straggling duplicate a chance to show up before counting.
	time.Sleep(200 * time.Millisecond)

	notices := nt.all()
	require.Len(t, notices, 1)
	require.Equal(t, NoticeSessionExpired, notices[0].kind)
	require.Nil(t, getKey(t, db, store.KeyRefreshToken))
}

func TestTokenWithoutExpiry_ArmsNoTimer(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	fc := &fakeGateway{LoginResp: authResponse("not-a-jwt", "r1", "demo@test.com")}
	m := newManager(t, fc, db, nt, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))
	time.Sleep(100 * time.Millisecond)

	require.True(t, m.IsAuthenticated())
	require.Empty(t, nt.all())
}

func TestRefresh_RotatesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{
		LoginResp:   authResponse("a1", "r1", "demo@test.com"),
		RefreshResp: authResponse("a2", "r2", "demo@test.com"),
	}
	m := newManager(t, fc, db, nil, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))
	require.NoError(t, m.Refresh(context.Background()))

	require.Equal(t, "r1", fc.LastRefreshToken)
	require.Equal(t, "a2", fc.token())
	require.Equal(t, []byte("r2"), getKey(t, db, store.KeyRefreshToken))
}

func TestRefresh_WithoutSession(t *testing.T) {
	db := setupDB(t)
	m := newManager(t, &fakeGateway{}, db, nil, 0)

	require.ErrorIs(t, m.Refresh(context.Background()), ErrNotAuthenticated)
}

func TestPeriodicRefresh_UnauthorizedForcesLogout(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	fc := &fakeGateway{
		LoginResp:  authResponse("a1", "r1", "demo@test.com"),
		RefreshErr: &api.Error{Status: http.StatusUnauthorized, Message: "refresh token expired"},
	}
	m := newManager(t, fc, db, nt, 20*time.Millisecond)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))

	require.Eventually(t, func() bool {
		return !m.IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond)

	notices := nt.all()
	require.NotEmpty(t, notices)
	require.Equal(t, NoticeSessionExpired, notices[0].kind)
}

func TestPeriodicRefresh_TransientFailureKeepsSession(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	fc := &fakeGateway{
		LoginResp:  authResponse("a1", "r1", "demo@test.com"),
		RefreshErr: errors.New("connection refused"),
	}
	m := newManager(t, fc, db, nt, 20*time.Millisecond)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))

	require.Eventually(t, func() bool {
		return fc.refreshCalls() >= 3
	}, 2*time.Second, 10*time.Millisecond)

	require.True(t, m.IsAuthenticated())
	require.Empty(t, nt.all())
}

func TestUnauthorizedEscalation_ForcesLogout(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	fc := &fakeGateway{LoginResp: authResponse("a1", "r1", "demo@test.com")}
	m := newManager(t, fc, db, nt, 0)

	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))

	handler := fc.currentHandler()
	require.NotNil(t, handler)
	handler("token revoked")

	require.False(t, m.IsAuthenticated())
	notices := nt.all()
	require.Len(t, notices, 1)
	require.Equal(t, NoticeUnauthorized, notices[0].kind)
	require.Equal(t, "token revoked", notices[0].message)
}

func TestClose_UnregistersHandler(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{}
	m := NewManager(Config{Gateway: fc, DB: db})

	require.NotNil(t, fc.currentHandler())
	m.Close()
	require.Nil(t, fc.currentHandler())
}

func TestRestore_ValidatesPersistedSession(t *testing.T) {
	db := setupDB(t)
	userJSON, err := json.Marshal(models.User{ID: "1", Email: "demo@test.com"})
	require.NoError(t, err)
	seedKey(t, db, store.KeyUser, userJSON)
	seedKey(t, db, store.KeyRefreshToken, []byte("r1"))

	fc := &fakeGateway{
		accessToken: expiringToken(t, time.Hour),
		RefreshResp: authResponse("a2", "r2", "demo@test.com"),
	}
	m := newManager(t, fc, db, nil, 0)

	require.NoError(t, m.Restore(context.Background()))

	require.True(t, m.IsAuthenticated())
	require.Equal(t, 1, fc.refreshCalls())
	require.Equal(t, "r1", fc.LastRefreshToken)
	require.Equal(t, []byte("r2"), getKey(t, db, store.KeyRefreshToken))
}

func TestRestore_WithoutRefreshTokenStaysAnonymous(t *testing.T) {
	db := setupDB(t)
	userJSON, err := json.Marshal(models.User{ID: "1", Email: "demo@test.com"})
	require.NoError(t, err)
	seedKey(t, db, store.KeyUser, userJSON)

	fc := &fakeGateway{}
	m := newManager(t, fc, db, nil, 0)

	require.NoError(t, m.Restore(context.Background()))
	require.False(t, m.IsAuthenticated())
	require.Zero(t, fc.refreshCalls())
}

func TestRestore_UnauthorizedRefreshLogsOut(t *testing.T) {
	db := setupDB(t)
	nt := &recordingNotifier{}
	userJSON, err := json.Marshal(models.User{ID: "1", Email: "demo@test.com"})
	require.NoError(t, err)
	seedKey(t, db, store.KeyUser, userJSON)
	seedKey(t, db, store.KeyRefreshToken, []byte("stale"))

	fc := &fakeGateway{
		RefreshErr: &api.Error{Status: http.StatusUnauthorized, Message: "refresh token expired"},
	}
	m := newManager(t, fc, db, nt, 0)

	require.NoError(t, m.Restore(context.Background()))

	require.False(t, m.IsAuthenticated())
	require.Nil(t, getKey(t, db, store.KeyRefreshToken))
	notices := nt.all()
	require.NotEmpty(t, notices)
	require.Equal(t, NoticeSessionExpired, notices[0].kind)
}

func TestRestore_TransientRefreshFailureKeepsSession(t *testing.T) {
	db := setupDB(t)
	userJSON, err := json.Marshal(models.User{ID: "1", Email: "demo@test.com"})
	require.NoError(t, err)
	seedKey(t, db, store.KeyUser, userJSON)
	seedKey(t, db, store.KeyRefreshToken, []byte("r1"))

	fc := &fakeGateway{RefreshErr: errors.New("timeout")}
	m := newManager(t, fc, db, nil, 0)

	require.NoError(t, m.Restore(context.Background()))
	require.True(t, m.IsAuthenticated())
}

func TestConcurrentRefreshAndLogout_StateStaysConsistent(t *testing.T) {
	db := setupDB(t)
	fc := &fakeGateway{
		LoginResp:    authResponse("a1", "r1", "demo@test.com"),
		RefreshResp:  authResponse("a2", "r2", "demo@test.com"),
		RefreshDelay: 30 * time.Millisecond,
		LogoutDelay:  10 * time.Millisecond,
	}
	m := newManager(t, fc, db, nil, 0)
	require.True(t, m.Login(context.Background(), "demo@test.com", "x"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = m.Refresh(context.Background())
	}()
	go func() {
		defer wg.Done()
		m.Logout(context.Background())
	}()
	wg.Wait()

	// Whichever write landed last, the triple must be fully set or fully
	// cleared, never mixed.
	user := m.User()
	refreshToken := getKey(t, db, store.KeyRefreshToken)
	token := fc.token()
	if user != nil {
		require.NotEmpty(t, refreshToken)
		require.NotEmpty(t, token)
	} else {
		require.Nil(t, refreshToken)
		require.Empty(t, token)
	}
}
