package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/shopsync/internal/client/credentials"
	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: make(map[string][]byte)} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) { return r.data[key], nil }
func (r *memRepo) Set(_ context.Context, key string, value []byte) error {
	r.data[key] = value
	return nil
}
func (r *memRepo) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}
func (r *memRepo) Clear(_ context.Context) error {
	r.data = make(map[string][]byte)
	return nil
}

type call struct {
	method string
	path   string
	body   []byte
}

// fakeRequester serves canned responses keyed by "METHOD path" and records
// every call. Errors win over responses.
type fakeRequester struct {
	responses map[string]string
	errs      map[string]error
	calls     []call
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (f *fakeRequester) Request(_ context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		body, _ = json.Marshal(in)
	}
	f.calls = append(f.calls, call{method: method, path: path, body: body})

	key := method + " " + path
	if err := f.errs[key]; err != nil {
		return err
	}
	if resp, ok := f.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewJSON(io.Discard)
}

func newManager(t *testing.T, api transport.Requester) (*Manager, *credentials.Store) {
	t.Helper()
	creds := credentials.NewStore(newMemRepo(), testLogger())
	return NewManager(api, creds, testLogger()), creds
}

// ---- tests ----

func TestRegister_Success(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /register"] = `{"success":true,"token":"tok-1","user":{"id":"u1","email":"a@b.c"}}`
	m, creds := newManager(t, api)

	user, err := m.Register(context.Background(), RegisterForm{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	require.True(t, creds.Get().Authenticated())
	require.Equal(t, "tok-1", creds.Get().Token)
	require.Equal(t, StateSucceeded, m.State(OpRegister))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := newFakeRequester()
	api.errs["POST /register"] = &transport.RemoteError{
		Status: http.StatusConflict,
		Body:   []byte(`{"error":"User with this email already exists"}`),
	}
	m, creds := newManager(t, api)

	_, err := m.Register(context.Background(), RegisterForm{Email: "a@b.c", Password: "pw"})
	require.ErrorIs(t, err, ErrDuplicateAccount)
	require.False(t, creds.Get().Authenticated())
	require.Equal(t, StateFailed, m.State(OpRegister))
}

func TestRegister_MissingToken(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /register"] = `{"success":true,"user":{"id":"u1"}}`
	m, creds := newManager(t, api)

	_, err := m.Register(context.Background(), RegisterForm{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
	require.False(t, creds.Get().Authenticated())
}

func TestLogin_Success(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /login"] = `{"success":true,"token":"tok-1","user":{"id":"u1","email":"a@b.c"}}`
	m, creds := newManager(t, api)

	user, err := m.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "a@b.c", user.Email)
	require.True(t, creds.Get().Authenticated())
	require.Equal(t, StateSucceeded, m.State(OpLogin))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	api := newFakeRequester()
	api.errs["POST /login"] = &transport.RemoteError{
		Status: http.StatusUnauthorized,
		Body:   []byte(`{"error":"Invalid email or password"}`),
	}
	m, creds := newManager(t, api)

	_, err := m.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, creds.Get().Authenticated())
	require.Equal(t, StateFailed, m.State(OpLogin))
}

func TestFetchProfile_RefreshesIdentityKeepingToken(t *testing.T) {
	api := newFakeRequester()
	api.responses["GET /users/u1"] = `{"user":{"id":"u1","email":"a@b.c","firstName":"Anna"}}`
	m, creds := newManager(t, api)
	creds.Set(context.Background(), "tok-1", &models.UserIdentity{ID: "u1", Email: "a@b.c"})

	user, err := m.FetchProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Anna", user.FirstName)

	sess := creds.Get()
	require.Equal(t, "tok-1", sess.Token)
	require.Equal(t, "Anna", sess.Identity.FirstName)
}

func TestFetchProfile_SkipsRefreshWhenSessionEvicted(t *testing.T) {
	// The credential store was evicted while the request was in flight; the
	// response must not resurrect a session.
	api := newFakeRequester()
	api.responses["GET /users/u1"] = `{"user":{"id":"u1","email":"a@b.c"}}`
	m, creds := newManager(t, api)

	_, err := m.FetchProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.False(t, creds.Get().Authenticated())
}

func TestUpdateProfile_SendsOnlyWhitelistedFields(t *testing.T) {
	api := newFakeRequester()
	api.responses["PUT /users/u1"] = `{"success":true,"user":{"id":"u1","email":"a@b.c","phone":"+371 200"}}`
	m, creds := newManager(t, api)
	creds.Set(context.Background(), "tok-1", &models.UserIdentity{ID: "u1", Email: "a@b.c"})

	_, err := m.UpdateProfile(context.Background(), "u1", models.ProfilePatch{Phone: "+371 200"})
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(api.calls[0].body, &sent))
	require.Contains(t, sent, "phone")
	require.NotContains(t, sent, "email")
	require.NotContains(t, sent, "role")
	require.NotContains(t, sent, "createdAt")

	require.Equal(t, "+371 200", creds.Get().Identity.Phone)
}

func TestUpdateProfile_FailureLeavesIdentityUntouched(t *testing.T) {
	api := newFakeRequester()
	api.errs["PUT /users/u1"] = &transport.RemoteError{Status: http.StatusInternalServerError, Body: []byte(`{}`)}
	m, creds := newManager(t, api)
	creds.Set(context.Background(), "tok-1", &models.UserIdentity{ID: "u1", Phone: "old"})

	_, err := m.UpdateProfile(context.Background(), "u1", models.ProfilePatch{Phone: "new"})
	require.Error(t, err)
	require.Equal(t, "old", creds.Get().Identity.Phone)
	require.Equal(t, StateFailed, m.State(OpUpdateProfile))
}

func TestLogout_ClearsSessionAndStates(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /login"] = `{"token":"tok-1","user":{"id":"u1"}}`
	m, creds := newManager(t, api)

	_, err := m.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	m.Logout(context.Background())

	require.False(t, creds.Get().Authenticated())
	require.False(t, m.Authenticated())
	require.Equal(t, StateIdle, m.State(OpLogin))
	// No network call accompanies a logout.
	require.Len(t, api.calls, 1)
}

func TestState_IdleByDefault(t *testing.T) {
	m, _ := newManager(t, newFakeRequester())
	for _, op := range []Operation{OpRegister, OpLogin, OpFetchProfile, OpUpdateProfile} {
		require.Equal(t, StateIdle, m.State(op))
	}
}
