package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_api/internal/models"
)

func decodeRequest(t *testing.T, body string) OrderRequest {
	t.Helper()
	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestToOrder(t *testing.T) {
	req := decodeRequest(t, `{
		"numeroPedido": "A1",
		"valorTotal": 1000,
		"dataCriacao": "2024-01-01T03:00:00-03:00",
		"unknownField": true,
		"items": [{"idItem": "5", "quantidadeItem": 2, "valorItem": 500}, {"idItem": 7, "quantidadeItem": 1, "valorItem": 0}]
	}`)

	order, err := ToOrder("A1", req)
	require.NoError(t, err)

	assert.Equal(t, "A1", order.OrderID)
	assert.Equal(t, int64(1000), order.Value)
	assert.Equal(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), order.CreationDate)
	assert.Equal(t, []models.Item{
		{OrderID: "A1", ProductID: 5, Quantity: 2, Price: 500},
		{OrderID: "A1", ProductID: 7, Quantity: 1, Price: 0},
	}, order.Items)
}

func TestToOrder_KeyComesFromCaller(t *testing.T) {
	req := decodeRequest(t, `{"numeroPedido": "BODY", "valorTotal": 1, "items": []}`)

	order, err := ToOrder("PATH", req)
	require.NoError(t, err)
	assert.Equal(t, "PATH", order.OrderID)
	assert.True(t, order.CreationDate.IsZero())
	assert.NotNil(t, order.Items)
	assert.Empty(t, order.Items)
}

func TestToOrder_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		req  OrderRequest
	}{
		{name: "non numeric item id", req: OrderRequest{Items: []OrderItemRequest{{IDItem: json.Number("5a")}}}},
		{name: "fractional item id", req: decodeRequest(t, `{"items": [{"idItem": 5.5}]}`)},
		{name: "missing item id", req: decodeRequest(t, `{"items": [{"quantidadeItem": 1}]}`)},
		{name: "bad date", req: OrderRequest{DataCriacao: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToOrder("A1", tt.req)
			require.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestOrderRequest_ItemIDMustBeNumeric(t *testing.T) {
	var req OrderRequest
	require.Error(t, json.Unmarshal([]byte(`{"items": [{"idItem": "abc"}]}`), &req))
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00", "2024-01-01"} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}
}

func TestFromOrder(t *testing.T) {
	resp := FromOrder(models.Order{
		OrderID:      "A1",
		Value:        1000,
		CreationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Items:        []models.Item{{ID: 3, OrderID: "A1", ProductID: 5, Quantity: 2, Price: 500}},
	})

	assert.Equal(t, OrderResponse{
		NumeroPedido: "A1",
		ValorTotal:   1000,
		DataCriacao:  "2024-01-01T00:00:00Z",
		Items:        []OrderItemResponse{{IDItem: "5", QuantidadeItem: 2, ValorItem: 500}},
	}, resp)
}

func TestFromOrder_NilItemsEncodeAsArray(t *testing.T) {
	b, err := json.Marshal(FromOrder(models.Order{OrderID: "A1"}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"items":[]`)

	b, err = json.Marshal(FromOrders(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestRoundTrip_SameShapeBothWays(t *testing.T) {
	req := decodeRequest(t, `{"numeroPedido":"A1","valorTotal":1000,"dataCriacao":"2024-01-01T00:00:00Z","items":[{"idItem":"5","quantidadeItem":2,"valorItem":500}]}`)

	order, err := ToOrder(req.NumeroPedido, req)
	require.NoError(t, err)
	resp := FromOrder(order)

	assert.Equal(t, req.NumeroPedido, resp.NumeroPedido)
	assert.Equal(t, *req.ValorTotal, resp.ValorTotal)
	assert.Equal(t, req.DataCriacao, resp.DataCriacao)
	assert.Equal(t, []OrderItemResponse{{IDItem: "5", QuantidadeItem: 2, ValorItem: 500}}, resp.Items)
}
