package transport

import (
	"encoding/json"
	"time"
)

type OrderItemRequest struct {
	IDItem         json.Number `json:"idItem"`
	QuantidadeItem int         `json:"quantidadeItem"`
	ValorItem      int64       `json:"valorItem"`
}

// OrderRequest is the caller-facing order shape. Pointer and slice fields
// stay nil when absent from the body.
type OrderRequest struct {
	NumeroPedido string             `json:"numeroPedido"`
	ValorTotal   *int64             `json:"valorTotal"`
	DataCriacao  string             `json:"dataCriacao"`
	Items        []OrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	IDItem         string `json:"idItem"`
	QuantidadeItem int    `json:"quantidadeItem"`
	ValorItem      int64  `json:"valorItem"`
}

type OrderResponse struct {
	NumeroPedido string              `json:"numeroPedido"`
	ValorTotal   int64               `json:"valorTotal"`
	DataCriacao  string              `json:"dataCriacao"`
	Items        []OrderItemResponse `json:"items"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type AuthResult struct {
	User      UserResponse
	Token     string
	ExpiresAt time.Time
}
