package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeRequester serves canned JSON keyed by "METHOD path".
type fakeRequester struct {
	responses map[string]string
	errs      map[string]error
	calls     int
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{responses: make(map[string]string), errs: make(map[string]error)}
}

func (f *fakeRequester) Request(_ context.Context, method, path string, _, out any) error {
	f.calls++
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

func draft(userID string) models.OrderDraft {
	return models.OrderDraft{
		UserID:        userID,
		Items:         []models.Item{{ID: "p1", Title: "Widget", Price: 9.5, Quantity: 2}},
		Total:         19,
		PaymentMethod: "card",
	}
}

func TestCreate_AppendsConfirmedOrder(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /orders"] = `{"success":true,"order":{"id":"o1","userId":"u1","status":"pending","total":19}}`
	l := NewLedger(api, testLogger())

	order, err := l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)
	require.Equal(t, "o1", order.ID)
	require.Equal(t, models.OrderStatusPending, order.Status)

	got := l.Orders("u1")
	require.Len(t, got, 1)
	require.Equal(t, "o1", got[0].ID)
}

func TestCreate_SecondOrderDoesNotClobberFirst(t *testing.T) {
	api := newFakeRequester()
	l := NewLedger(api, testLogger())

	api.responses["POST /orders"] = `{"order":{"id":"o1","userId":"u1"}}`
	_, err := l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)

	api.responses["POST /orders"] = `{"order":{"id":"o2","userId":"u1"}}`
	_, err = l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)

	got := l.Orders("u1")
	require.Len(t, got, 2)
	require.Equal(t, "o1", got[0].ID)
	require.Equal(t, "o2", got[1].ID)
}

func TestCreate_MissingOrderInResponse(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /orders"] = `{"success":true}`
	l := NewLedger(api, testLogger())

	_, err := l.Create(context.Background(), draft("u1"))
	require.Error(t, err)
	require.Empty(t, l.Orders("u1"))
}

func TestFetchByUser_ReplacesEntryWholesale(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /orders"] = `{"order":{"id":"local-only","userId":"u1","status":"pending"}}`
	l := NewLedger(api, testLogger())

	_, err := l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)

	// The server has advanced statuses in the meantime; the fetch result
	// replaces the local entry, it is never merged into it.
	api.responses["GET /orders/u1"] = `{"orders":[{"id":"o1","userId":"u1","status":"shipping"}]}`
	got, err := l.FetchByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "o1", got[0].ID)
	require.Equal(t, models.OrderStatusShipping, got[0].Status)
	require.Equal(t, got, l.Orders("u1"))
}

func TestFetchByUser_AcceptsLegacyBareArray(t *testing.T) {
	api := newFakeRequester()
	api.responses["GET /orders/u1"] = `[{"id":"o1","userId":"u1","status":"pending"}]`
	l := NewLedger(api, testLogger())

	got, err := l.FetchByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "o1", got[0].ID)
}

func TestFetchByUser_EmptyList(t *testing.T) {
	api := newFakeRequester()
	api.responses["GET /orders/u1"] = `{"orders":[]}`
	l := NewLedger(api, testLogger())

	got, err := l.FetchByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFetchByUser_ForbiddenLeavesLedgerUntouched(t *testing.T) {
	api := newFakeRequester()
	api.responses["POST /orders"] = `{"order":{"id":"o1","userId":"u1"}}`
	l := NewLedger(api, testLogger())

	_, err := l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)

	api.errs["GET /orders/u1"] = &transport.RemoteError{Status: http.StatusForbidden, Body: []byte(`{"error":"Access denied"}`)}
	_, err = l.FetchByUser(context.Background(), "u1")
	require.ErrorIs(t, err, transport.ErrForbidden)
	require.Len(t, l.Orders("u1"), 1)
}

func TestClear_DropsOnlyThatUser(t *testing.T) {
	api := newFakeRequester()
	l := NewLedger(api, testLogger())

	api.responses["POST /orders"] = `{"order":{"id":"o1","userId":"u1"}}`
	_, err := l.Create(context.Background(), draft("u1"))
	require.NoError(t, err)

	api.responses["POST /orders"] = `{"order":{"id":"o2","userId":"u2"}}`
	_, err = l.Create(context.Background(), draft("u2"))
	require.NoError(t, err)

	l.Clear("u1")
	require.Empty(t, l.Orders("u1"))
	require.Len(t, l.Orders("u2"), 1)
}
