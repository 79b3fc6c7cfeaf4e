package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/shopsync/internal/client/config"
	"github.com/dmitrijs2005/shopsync/internal/client/credentials"
	"github.com/dmitrijs2005/shopsync/internal/client/orders"
	"github.com/dmitrijs2005/shopsync/internal/client/session"
	"github.com/dmitrijs2005/shopsync/internal/client/syncer"
	"github.com/dmitrijs2005/shopsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	method string
	path   string
	body   []byte
}

// fakeAPI serves canned JSON keyed by "METHOD path" and records every call.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []apiCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: make(map[string]string), errs: make(map[string]error)}
}

func (f *fakeAPI) Request(_ context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		body, _ = json.Marshal(in)
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, path: path, body: body})
	key := method + " " + path
	err := f.errs[key]
	resp, ok := f.responses[key]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if ok && out != nil {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeAPI) callsTo(method, path string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			out = append(out, c)
		}
	}
	return out
}

type memRepo struct {
	data map[string][]byte
}

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

// scriptInput replaces the interactive prompts with scripted answers.
func scriptInput(t *testing.T, answers ...string) {
	t.Helper()
	origText := getSimpleText
	origPassword := getPassword
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
	})

	next := func() string {
		require.NotEmpty(t, answers, "script ran out of answers")
		answer := answers[0]
		answers = answers[1:]
		return answer
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next(), nil }
	getPassword = func(string, io.Writer) (string, error) { return next(), nil }
}

func newTestApp(t *testing.T, api *fakeAPI) (*App, *bytes.Buffer) {
	t.Helper()

	logger := logging.NewJSON(io.Discard)
	creds := credentials.NewStore(&memRepo{data: make(map[string][]byte)}, logger)
	out := &bytes.Buffer{}

	app := &App{
		config:  &config.Config{},
		logger:  logger,
		creds:   creds,
		session: session.NewManager(api, creds, logger),
		sync:    syncer.New(api, logger),
		ledger:  orders.NewLedger(api, logger),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
	}
	return app, out
}

func loginResponse() string {
	return `{"success":true,"token":"tok-1","user":{"id":"u1","email":"a@b.c","firstName":"Anna"}}`
}

func TestLogin_ActivatesSynchronizer(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, out := newTestApp(t, api)
	scriptInput(t, "a@b.c", "password")

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Logged in as a@b.c")
	assert.True(t, app.isLoggedIn())

	// Collections were loaded from the server during activation.
	for _, kind := range []string{"cart", "favs", "compare"} {
		assert.Len(t, api.callsTo("GET", "/"+kind+"/u1"), 1)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	api := newFakeAPI()
	api.errs["POST /login"] = session.ErrInvalidCredentials
	app, out := newTestApp(t, api)
	scriptInput(t, "a@b.c", "wrong")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Invalid email or password")
	assert.False(t, app.isLoggedIn())
}

func TestAddToCart_PushesChange(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, out := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	scriptInput(t, "p1", "Widget", "9.50")
	require.NoError(t, app.AddToCart(context.Background()))
	app.sync.Wait()

	assert.Contains(t, out.String(), "Added to cart")

	puts := api.callsTo("PUT", "/cart/u1")
	require.Len(t, puts, 1)
	assert.Contains(t, string(puts[0].body), `"id":"p1"`)
}

func TestAddToCart_SameProductBumpsQuantity(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, _ := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	scriptInput(t, "p1", "Widget", "9.50", "p1", "Widget", "9.50")
	require.NoError(t, app.AddToCart(context.Background()))
	require.NoError(t, app.AddToCart(context.Background()))
	app.sync.Wait()

	items := app.sync.Items(syncer.KindCart)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestToggleFav_AddsThenRemoves(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, _ := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	scriptInput(t, "p1", "Widget", "p1", "Widget")
	require.NoError(t, app.ToggleFav(context.Background()))
	require.Len(t, app.sync.Items(syncer.KindFavs), 1)

	require.NoError(t, app.ToggleFav(context.Background()))
	require.Empty(t, app.sync.Items(syncer.KindFavs))
	app.sync.Wait()
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	api.responses["POST /orders"] = `{"success":true,"order":{"id":"o1","userId":"u1","total":19,"status":"pending"}}`
	app, out := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	scriptInput(t, "p1", "Widget", "9.50")
	require.NoError(t, app.AddToCart(context.Background()))

	scriptInput(t, "+371 200", "Riga", "card")
	require.NoError(t, app.Checkout(context.Background()))
	app.sync.Wait()

	assert.Contains(t, out.String(), "Order o1 created")
	assert.Empty(t, app.sync.Items(syncer.KindCart))

	created := api.callsTo("POST", "/orders")
	require.Len(t, created, 1)
	assert.Contains(t, string(created[0].body), `"userId":"u1"`)
	assert.Contains(t, string(created[0].body), `"paymentMethod":"card"`)
}

func TestCheckout_EmptyCart(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, out := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Checkout(context.Background()))
	assert.Contains(t, out.String(), "Cart is empty")
	assert.Empty(t, api.callsTo("POST", "/orders"))
}

func TestOrders_PrintsHistory(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	api.responses["GET /orders/u1"] = `{"orders":[{"id":"o1","userId":"u1","total":19,"status":"shipping"}]}`
	app, out := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Orders(context.Background()))
	assert.Contains(t, out.String(), "o1")
	assert.Contains(t, out.String(), "shipping")
}

func TestLogout_ClearsEverything(t *testing.T) {
	api := newFakeAPI()
	api.responses["POST /login"] = loginResponse()
	app, out := newTestApp(t, api)

	scriptInput(t, "a@b.c", "password")
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Logout(context.Background()))
	assert.Contains(t, out.String(), "Logged out")
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "not logged in", app.status())
}

func TestCommands_RequireLogin(t *testing.T) {
	app, out := newTestApp(t, newFakeAPI())

	require.NoError(t, app.ShowCart(context.Background()))
	require.NoError(t, app.Checkout(context.Background()))
	require.NoError(t, app.Profile(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
}
