package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus representa o estado de um pagamento
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending" // aguardando autenticação 3DS
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusConfirmed  PaymentStatus = "confirmed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// PaymentMethod representa o método de pagamento
type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
)

// Payment é a visão de uma transação exposta pela API HTTP
type Payment struct {
	Tid               string          `json:"tid,omitempty"`
	Reference         string          `json:"reference,omitempty"`
	Amount            int64           `json:"amount"` // Valor em centavos
	AmountInReais     decimal.Decimal `json:"amount_in_reais"`
	Status            PaymentStatus   `json:"status"`
	Method            PaymentMethod   `json:"method,omitempty"`
	ReturnCode        string          `json:"return_code,omitempty"`
	ReturnMessage     string          `json:"return_message,omitempty"`
	Nsu               string          `json:"nsu,omitempty"`
	AuthorizationCode string          `json:"authorization_code,omitempty"`
	RefundID          string          `json:"refund_id,omitempty"`
	AuthenticationURL string          `json:"authentication_url,omitempty"`
	Refunds           []Refund        `json:"refunds,omitempty"`
	ProcessedAt       time.Time       `json:"processed_at"`
}

// Refund representa um cancelamento listado para a transação
type Refund struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

// IsPaid verifica se o pagamento foi confirmado
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusConfirmed
}

// NeedsAuthentication verifica se o portador precisa passar pelo desafio 3DS
func (p *Payment) NeedsAuthentication() bool {
	return p.Status == PaymentStatusPending && p.AuthenticationURL != ""
}
