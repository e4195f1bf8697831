package rede

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind define a modalidade da transação
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

// URLKind define o tipo de URL de retorno
type URLKind string

const (
	URLKindCallback            URLKind = "callback"
	URLKindThreeDSecureSuccess URLKind = "threeDSecureSuccess"
	URLKindThreeDSecureFailure URLKind = "threeDSecureFailure"
)

// URL é uma URL de retorno enviada com a transação
type URL struct {
	Kind URLKind `json:"kind"`
	URL  string  `json:"url"`
}

// Brand traz o retorno da bandeira (habilitado por Transaction-Response: brand-return-opened)
type Brand struct {
	Name              string `json:"name,omitempty"`
	ReturnCode        string `json:"returnCode,omitempty"`
	ReturnMessage     string `json:"returnMessage,omitempty"`
	AuthorizationCode string `json:"authorizationCode,omitempty"`
	BrandTid          string `json:"brandTid,omitempty"`
}

// Authorization é o bloco de autorização retornado na consulta de transação
type Authorization struct {
	DateTime               string `json:"dateTime,omitempty"`
	ReturnCode             string `json:"returnCode,omitempty"`
	ReturnMessage          string `json:"returnMessage,omitempty"`
	Affiliation            int64  `json:"affiliation,omitempty"`
	Status                 string `json:"status,omitempty"`
	Reference              string `json:"reference,omitempty"`
	Tid                    string `json:"tid,omitempty"`
	Nsu                    string `json:"nsu,omitempty"`
	AuthorizationCode      string `json:"authorizationCode,omitempty"`
	Kind                   Kind   `json:"kind,omitempty"`
	Amount                 int64  `json:"amount,omitempty"`
	Installments           int    `json:"installments,omitempty"`
	CardHolderName         string `json:"cardHolderName,omitempty"`
	CardBin                string `json:"cardBin,omitempty"`
	Last4                  string `json:"last4,omitempty"`
	SoftDescriptor         string `json:"softDescriptor,omitempty"`
	Origin                 int    `json:"origin,omitempty"`
	Subscription           bool   `json:"subscription,omitempty"`
	DistributorAffiliation int64  `json:"distributorAffiliation,omitempty"`
	Brand                  *Brand `json:"brand,omitempty"`
}

// CaptureDetails é o bloco de captura retornado na consulta de transação
type CaptureDetails struct {
	DateTime string `json:"dateTime,omitempty"`
	Nsu      string `json:"nsu,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
}

// Refund representa um cancelamento (estorno) de uma transação
type Refund struct {
	RefundID       string `json:"refundId,omitempty"`
	RefundDateTime string `json:"refundDateTime,omitempty"`
	CancelID       string `json:"cancelId,omitempty"`
	Status         string `json:"status,omitempty"`
	Amount         int64  `json:"amount,omitempty"`
}

// Transaction é usada tanto na requisição quanto na resposta da API.
// Valores monetários são em centavos.
type Transaction struct {
	Capture                *bool         `json:"capture,omitempty"`
	Kind                   Kind          `json:"kind,omitempty"`
	Reference              string        `json:"reference,omitempty"`
	Amount                 int64         `json:"amount"`
	Installments           int           `json:"installments,omitempty"`
	CardHolderName         string        `json:"cardHolderName,omitempty"`
	CardNumber             string        `json:"cardNumber,omitempty"`
	ExpirationMonth        int           `json:"expirationMonth,omitempty"`
	ExpirationYear         int           `json:"expirationYear,omitempty"`
	SecurityCode           string        `json:"securityCode,omitempty"`
	SoftDescriptor         string        `json:"softDescriptor,omitempty"`
	Subscription           bool          `json:"subscription,omitempty"`
	Origin                 int           `json:"origin,omitempty"`
	DistributorAffiliation int64         `json:"distributorAffiliation,omitempty"`
	StorageCard            string        `json:"storageCard,omitempty"`
	ThreeDSecure           *ThreeDSecure `json:"threeDSecure,omitempty"`
	URLs                   []URL         `json:"urls,omitempty"`
	Consumer               *Consumer     `json:"consumer,omitempty"`

	// Campos de resposta
	ReturnCode        string          `json:"returnCode,omitempty"`
	ReturnMessage     string          `json:"returnMessage,omitempty"`
	Tid               string          `json:"tid,omitempty"`
	Nsu               string          `json:"nsu,omitempty"`
	AuthorizationCode string          `json:"authorizationCode,omitempty"`
	DateTime          string          `json:"dateTime,omitempty"`
	RequestDateTime   string          `json:"requestDateTime,omitempty"`
	CardBin           string          `json:"cardBin,omitempty"`
	Last4             string          `json:"last4,omitempty"`
	Brand             *Brand          `json:"brand,omitempty"`
	RefundID          string          `json:"refundId,omitempty"`
	RefundDateTime    string          `json:"refundDateTime,omitempty"`
	CancelID          string          `json:"cancelId,omitempty"`
	Authorization     *Authorization  `json:"authorization,omitempty"`
	CaptureDetails    *CaptureDetails `json:"-"`
	Refunds           []Refund        `json:"refunds,omitempty"`
}

// NewTransaction cria uma transação com valor em centavos e referência do pedido
func NewTransaction(amount int64, reference string) *Transaction {
	return &Transaction{Amount: amount, Reference: reference}
}

// CreditCard preenche os dados do cartão de crédito
func (t *Transaction) CreditCard(cardNumber, securityCode string, expirationMonth, expirationYear int, holderName string) *Transaction {
	t.Kind = KindCredit
	t.setCard(cardNumber, securityCode, expirationMonth, expirationYear, holderName)
	return t
}

// DebitCard preenche os dados do cartão de débito. Débito exige captura
// automática e autenticação 3DS; um ThreeDSecure padrão é criado se ausente.
func (t *Transaction) DebitCard(cardNumber, securityCode string, expirationMonth, expirationYear int, holderName string) *Transaction {
	t.Kind = KindDebit
	t.setCard(cardNumber, securityCode, expirationMonth, expirationYear, holderName)
	t.SetCapture(true)
	if t.ThreeDSecure == nil {
		t.ThreeDSecure = NewThreeDSecure(true, OnFailureDecline, "")
	}
	return t
}

func (t *Transaction) setCard(cardNumber, securityCode string, expirationMonth, expirationYear int, holderName string) {
	t.CardNumber = cardNumber
	t.SecurityCode = securityCode
	t.ExpirationMonth = expirationMonth
	t.ExpirationYear = expirationYear
	t.CardHolderName = holderName
}

// SetCapture define se a transação é capturada automaticamente
func (t *Transaction) SetCapture(capture bool) *Transaction {
	t.Capture = &capture
	return t
}

// AddURL adiciona uma URL de retorno (callback ou 3DS)
func (t *Transaction) AddURL(kind URLKind, url string) *Transaction {
	t.URLs = append(t.URLs, URL{Kind: kind, URL: url})
	return t
}

// IsApproved retorna true se a Rede aprovou a operação
func (t *Transaction) IsApproved() bool {
	return t.ReturnCode == ReturnCodeSuccess
}

// RequiresAuthentication retorna true se o portador deve ser redirecionado para o desafio 3DS
func (t *Transaction) RequiresAuthentication() bool {
	return t.ReturnCode == ReturnCodeAuthenticationRequired && t.ThreeDSecure != nil && t.ThreeDSecure.URL != ""
}

// AmountDecimal retorna o valor em reais
func (t *Transaction) AmountDecimal() decimal.Decimal {
	return CentsToDecimal(t.Amount)
}

// MarshalJSON devolve "capture" como objeto quando a transação veio de uma
// consulta. Respostas de consulta não trazem amount no nível raiz.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	aux := struct {
		plain
		Capture any    `json:"capture,omitempty"`
		Amount  *int64 `json:"amount,omitempty"`
	}{plain: plain(t)}

	if t.Capture != nil {
		aux.Capture = *t.Capture
	} else if t.CaptureDetails != nil {
		aux.Capture = t.CaptureDetails
	}
	if t.Amount != 0 || t.Authorization == nil {
		amount := t.Amount
		aux.Amount = &amount
	}

	return json.Marshal(aux)
}

// UnmarshalJSON aceita "capture" tanto como flag (requisição) quanto como
// objeto (consulta de transação)
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		*plain
		Capture json.RawMessage `json:"capture,omitempty"`
	}{plain: (*plain)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Capture)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '{':
		var details CaptureDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return fmt.Errorf("erro ao decodificar capture: %w", err)
		}
		t.CaptureDetails = &details
	default:
		var flag bool
		if err := json.Unmarshal(raw, &flag); err != nil {
			return fmt.Errorf("erro ao decodificar capture: %w", err)
		}
		t.Capture = &flag
	}

	return nil
}
