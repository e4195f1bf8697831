package rede

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicePaths(t *testing.T) {
	tests := []struct {
		name   string
		svc    Service
		path   string
		method string
	}{
		{"create", &CreateTransactionService{Transaction: NewTransaction(1, "r")}, "transactions", MethodPost},
		{"capture", &CaptureTransactionService{Tid: "123"}, "transactions/123", MethodPut},
		{"get by tid", &GetTransactionService{Tid: "123"}, "transactions/123", MethodGet},
		{"get by reference", &GetTransactionService{Reference: "pedido 1"}, "transactions?reference=pedido+1", MethodGet},
		{"get refunds", &GetTransactionService{Tid: "123", Refunds: true}, "transactions/123/refunds", MethodGet},
		{"cancel", &CancelTransactionService{Tid: "123"}, "transactions/123/refunds", MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.path, tt.svc.Path())
			assert.Equal(t, tt.method, tt.svc.Method())
		})
	}
}

func TestServiceBodyValidation(t *testing.T) {
	_, err := (&CreateTransactionService{}).Body()
	assert.Error(t, err)

	_, err = (&CaptureTransactionService{}).Body()
	assert.Error(t, err)

	_, err = (&CancelTransactionService{}).Body()
	assert.Error(t, err)

	_, err = (&GetTransactionService{}).Body()
	assert.Error(t, err)

	body, err := (&GetTransactionService{Tid: "1"}).Body()
	assert.NoError(t, err)
	assert.Empty(t, body)
}

func TestCreateBodyIncludesConsumer(t *testing.T) {
	svc := &CreateTransactionService{
		Transaction: NewTransaction(0, "zero").SetCapture(false),
		Consumer:    &Consumer{IP: "10.0.0.1"},
	}

	body, err := svc.Body()
	require.NoError(t, err)

	assert.JSONEq(t, `{"capture":false,"reference":"zero","amount":0,"consumer":{"ip":"10.0.0.1"}}`, string(body))
	assert.Nil(t, svc.Transaction.Consumer)
}

func TestClientOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("authorize disables capture", func(t *testing.T) {
		fake := newFakeRede()
		client, _ := newTestClient(t, fake)

		tx := NewTransaction(500, "r1").CreditCard("5448280000000007", "235", 1, 2031, "Fulano").SetCapture(true)
		_, err := client.Authorize(ctx, tx)
		require.NoError(t, err)
		require.NotNil(t, tx.Capture)
		assert.True(t, *tx.Capture)

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(fake.body()), &sent))
		assert.Equal(t, false, sent["capture"])
		assert.Equal(t, float64(500), sent["amount"])
	})

	t.Run("zero dollar", func(t *testing.T) {
		fake := newFakeRede()
		client, _ := newTestClient(t, fake)

		tx := NewTransaction(999, "r2").CreditCard("5448280000000007", "235", 1, 2031, "Fulano")
		_, err := client.Zero(ctx, tx)
		require.NoError(t, err)
		assert.Equal(t, int64(999), tx.Amount)
		assert.Nil(t, tx.Capture)

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(fake.body()), &sent))
		assert.Equal(t, float64(0), sent["amount"])
		assert.Equal(t, false, sent["capture"])
	})

	t.Run("capture", func(t *testing.T) {
		fake := newFakeRede()
		client, _ := newTestClient(t, fake)

		_, err := client.Capture(ctx, "tid-9", 250)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, fake.req().Method)
		assert.Equal(t, "/v1/transactions/tid-9", fake.req().URL.Path)
		assert.JSONEq(t, `{"amount":250}`, fake.body())
	})

	t.Run("cancel", func(t *testing.T) {
		fake := newFakeRede()
		fake.apiBody = `{"returnCode":"359","returnMessage":"Refund successful.","refundId":"ref-1","tid":"tid-9","cancelId":"c-1"}`
		client, _ := newTestClient(t, fake)

		result, err := client.Cancel(ctx, "tid-9", 250)
		require.NoError(t, err)

		assert.Equal(t, "/v1/transactions/tid-9/refunds", fake.req().URL.Path)
		assert.Equal(t, "ref-1", result.RefundID)
		assert.False(t, result.IsApproved())
	})

	t.Run("get by reference", func(t *testing.T) {
		fake := newFakeRede()
		client, _ := newTestClient(t, fake)

		_, err := client.GetByReference(ctx, "pedido-1")
		require.NoError(t, err)

		assert.Equal(t, "/v1/transactions", fake.req().URL.Path)
		assert.Equal(t, "pedido-1", fake.req().URL.Query().Get("reference"))
	})

	t.Run("get refunds", func(t *testing.T) {
		fake := newFakeRede()
		fake.apiBody = `{"refunds":[{"refundId":"r-1","status":"Done","amount":100},{"refundId":"r-2","status":"Processing","amount":50}]}`
		client, _ := newTestClient(t, fake)

		result, err := client.GetRefunds(ctx, "tid-9")
		require.NoError(t, err)

		require.Len(t, result.Refunds, 2)
		assert.Equal(t, int64(50), result.Refunds[1].Amount)
	})
}

func TestTransactionUnmarshalQueryResponse(t *testing.T) {
	body := `{
		"requestDateTime": "2026-03-10T12:00:00-03:00",
		"authorization": {
			"returnCode": "00",
			"status": "Approved",
			"tid": "tid-1",
			"amount": 2099,
			"brand": {"name": "Mastercard", "returnCode": "00"}
		},
		"capture": {"dateTime": "2026-03-10T12:00:05-03:00", "nsu": "123", "amount": 2099}
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	require.NotNil(t, tx.Authorization)
	assert.Equal(t, "Mastercard", tx.Authorization.Brand.Name)
	require.NotNil(t, tx.CaptureDetails)
	assert.Equal(t, int64(2099), tx.CaptureDetails.Amount)
	assert.Nil(t, tx.Capture)
}

func TestTransactionMarshalQueryResponse(t *testing.T) {
	body := `{"authorization":{"status":"Approved","tid":"t1"},"capture":{"dateTime":"2026-01-01","nsu":"9","amount":100}}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	out, err := json.Marshal(&tx)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.NotContains(t, decoded, "amount")
	assert.Equal(t, map[string]any{"dateTime": "2026-01-01", "nsu": "9", "amount": float64(100)}, decoded["capture"])

	var again Transaction
	require.NoError(t, json.Unmarshal(out, &again))
	require.NotNil(t, again.CaptureDetails)
	assert.Equal(t, *tx.CaptureDetails, *again.CaptureDetails)
	assert.Equal(t, "t1", again.Authorization.Tid)
}

func TestTransactionMarshalRequest(t *testing.T) {
	out, err := json.Marshal(NewTransaction(0, "zero").SetCapture(false))
	require.NoError(t, err)

	assert.JSONEq(t, `{"amount":0,"capture":false,"reference":"zero"}`, string(out))
}

func TestTransactionUnmarshalCaptureFlag(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"capture":true,"amount":10}`), &tx))

	require.NotNil(t, tx.Capture)
	assert.True(t, *tx.Capture)
	assert.Nil(t, tx.CaptureDetails)
	assert.Equal(t, int64(10), tx.Amount)
}

func TestDebitCardRequiresThreeDSecure(t *testing.T) {
	tx := NewTransaction(100, "d1").DebitCard("5277696455399733", "123", 1, 2031, "Fulano")

	assert.Equal(t, KindDebit, tx.Kind)
	require.NotNil(t, tx.Capture)
	assert.True(t, *tx.Capture)
	require.NotNil(t, tx.ThreeDSecure)
	assert.True(t, tx.ThreeDSecure.Embedded)
}

func TestRequiresAuthentication(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"returnCode":"220","threeDSecure":{"url":"https://3ds.local/x"}}`), &tx))

	assert.True(t, tx.RequiresAuthentication())
	assert.False(t, tx.IsApproved())
}

func TestAddURL(t *testing.T) {
	tx := NewTransaction(1, "u").
		AddURL(URLKindThreeDSecureSuccess, "https://loja.local/ok").
		AddURL(URLKindThreeDSecureFailure, "https://loja.local/fail")

	require.Len(t, tx.URLs, 2)
	assert.Equal(t, URLKindThreeDSecureFailure, tx.URLs[1].Kind)
}
