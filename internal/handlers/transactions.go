package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/magnani/erede-go/internal/domain"
	"github.com/magnani/erede-go/internal/ports"
	"github.com/magnani/erede-go/rede"
)

// Códigos de retorno de cancelamento aceito
var refundReturnCodes = map[string]bool{"359": true, "360": true}

// CardRequest são os dados do cartão recebidos pela API
type CardRequest struct {
	Number          string `json:"number"`
	SecurityCode    string `json:"security_code"`
	ExpirationMonth int    `json:"expiration_month"`
	ExpirationYear  int    `json:"expiration_year"`
	HolderName      string `json:"holder_name"`
}

// ThreeDSecureRequest configura a autenticação 3DS da transação
type ThreeDSecureRequest struct {
	Embedded   *bool  `json:"embedded,omitempty"`
	OnFailure  string `json:"on_failure,omitempty"`
	Indicator  string `json:"indicator,omitempty"`
	SuccessURL string `json:"success_url"`
	FailureURL string `json:"failure_url"`
}

// CreateTransactionRequest é o body de POST /api/transactions
type CreateTransactionRequest struct {
	Reference      string               `json:"reference,omitempty"` // gerada se vazia
	Amount         string               `json:"amount"`              // em reais, ex: "20.99"
	Capture        *bool                `json:"capture,omitempty"`
	Kind           string               `json:"kind,omitempty"` // credit (padrão) ou debit
	Installments   int                  `json:"installments,omitempty"`
	SoftDescriptor string               `json:"soft_descriptor,omitempty"`
	Card           CardRequest          `json:"card"`
	ThreeDSecure   *ThreeDSecureRequest `json:"three_d_secure,omitempty"`
	SessionID      string               `json:"session_id,omitempty"` // gerado se vazio
}

// AmountRequest é o body de captura e cancelamento
type AmountRequest struct {
	Amount string `json:"amount"`
}

// TransactionHandler expõe as operações de adquirência via HTTP
type TransactionHandler struct {
	gateway ports.TransactionGateway
	logger  *zap.Logger
}

// NewTransactionHandler cria um novo handler de transações
func NewTransactionHandler(gateway ports.TransactionGateway, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{gateway: gateway, logger: logger}
}

// Register registra as rotas no router
func (h *TransactionHandler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/transactions").Subrouter()
	api.HandleFunc("", h.Create).Methods(http.MethodPost)
	api.HandleFunc("", h.GetByReference).Methods(http.MethodGet).Queries("reference", "{reference}")
	api.HandleFunc("/{tid}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/{tid}/capture", h.Capture).Methods(http.MethodPut)
	api.HandleFunc("/{tid}/refunds", h.Refund).Methods(http.MethodPost)
	api.HandleFunc("/{tid}/refunds", h.ListRefunds).Methods(http.MethodGet)
}

// Create autoriza uma transação
// Endpoint: POST /api/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	tx, err := buildTransaction(req, r.UserAgent())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.Consumer = consumer(r, req.SessionID)

	result, err := h.gateway.Create(r.Context(), tx)
	if err != nil {
		h.writeGatewayError(w, "create", err)
		return
	}

	h.logger.Info("transação criada",
		zap.String("tid", result.Tid),
		zap.String("reference", tx.Reference),
		zap.String("return_code", result.ReturnCode),
	)

	if result.Reference == "" {
		result.Reference = tx.Reference
	}
	if result.Amount == 0 {
		result.Amount = tx.Amount
	}
	result.Kind = tx.Kind

	writeJSON(w, http.StatusCreated, toPayment(result, tx.Capture))
}

// Get consulta uma transação
// Endpoint: GET /api/transactions/{tid}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.Get(r.Context(), mux.Vars(r)["tid"])
	if err != nil {
		h.writeGatewayError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayment(result, nil))
}

// GetByReference consulta uma transação pela referência
// Endpoint: GET /api/transactions?reference=...
func (h *TransactionHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.GetByReference(r.Context(), mux.Vars(r)["reference"])
	if err != nil {
		h.writeGatewayError(w, "get_by_reference", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayment(result, nil))
}

// Capture captura uma transação autorizada
// Endpoint: PUT /api/transactions/{tid}/capture
func (h *TransactionHandler) Capture(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}

	tid := mux.Vars(r)["tid"]
	result, err := h.gateway.Capture(r.Context(), tid, amount)
	if err != nil {
		h.writeGatewayError(w, "capture", err)
		return
	}

	if result.Tid == "" {
		result.Tid = tid
	}
	captured := true
	writeJSON(w, http.StatusOK, toPayment(result, &captured))
}

// Refund cancela uma transação
// Endpoint: POST /api/transactions/{tid}/refunds
func (h *TransactionHandler) Refund(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}

	tid := mux.Vars(r)["tid"]
	result, err := h.gateway.Cancel(r.Context(), tid, amount)
	if err != nil {
		h.writeGatewayError(w, "refund", err)
		return
	}

	if result.Tid == "" {
		result.Tid = tid
	}
	if result.Amount == 0 {
		result.Amount = amount
	}
	writeJSON(w, http.StatusOK, toPayment(result, nil))
}

// ListRefunds lista os cancelamentos de uma transação
// Endpoint: GET /api/transactions/{tid}/refunds
func (h *TransactionHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	tid := mux.Vars(r)["tid"]
	result, err := h.gateway.GetRefunds(r.Context(), tid)
	if err != nil {
		h.writeGatewayError(w, "list_refunds", err)
		return
	}

	if result.Tid == "" {
		result.Tid = tid
	}
	writeJSON(w, http.StatusOK, toPayment(result, nil))
}

// buildTransaction converte o body da API em uma transação e.Rede
// consumer monta os dados antifraude do portador a partir da requisição HTTP
func consumer(r *http.Request, sessionID string) *rede.Consumer {
	if sessionID == "" {
		sessionID = rede.NewSessionID()
	}
	return &rede.Consumer{IP: clientIP(r), SessionID: sessionID}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func buildTransaction(req CreateTransactionRequest, userAgent string) (*rede.Transaction, error) {
	amount, err := rede.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.Card.Number == "" {
		return nil, errors.New("número do cartão é obrigatório")
	}

	reference := req.Reference
	if reference == "" {
		reference = NewReference()
	}

	tx := rede.NewTransaction(amount, reference)
	tx.Installments = req.Installments
	tx.SoftDescriptor = req.SoftDescriptor

	card := req.Card
	switch rede.Kind(req.Kind) {
	case rede.KindDebit:
		tx.DebitCard(card.Number, card.SecurityCode, card.ExpirationMonth, card.ExpirationYear, card.HolderName)
	case rede.KindCredit, "":
		tx.CreditCard(card.Number, card.SecurityCode, card.ExpirationMonth, card.ExpirationYear, card.HolderName)
		if req.Capture != nil {
			tx.SetCapture(*req.Capture)
		}
	default:
		return nil, errors.New("kind deve ser credit ou debit")
	}

	if tds := req.ThreeDSecure; tds != nil {
		embedded := tds.Embedded == nil || *tds.Embedded
		tx.ThreeDSecure = rede.NewThreeDSecure(embedded, rede.OnFailure(tds.OnFailure), userAgent)
		if tds.Indicator != "" {
			if err := tx.ThreeDSecure.SetThreeDIndicator(tds.Indicator); err != nil && !rede.IsDeprecationWarning(err) {
				return nil, err
			}
		}
		if tds.SuccessURL != "" {
			tx.AddURL(rede.URLKindThreeDSecureSuccess, tds.SuccessURL)
		}
		if tds.FailureURL != "" {
			tx.AddURL(rede.URLKindThreeDSecureFailure, tds.FailureURL)
		}
	}

	return tx, nil
}

// NewReference gera uma referência de pedido com 16 caracteres alfanuméricos
func NewReference() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// toPayment converte a resposta da Rede na visão exposta pela API.
// capture é a flag de captura enviada na criação, quando conhecida.
func toPayment(tx *rede.Transaction, capture *bool) *domain.Payment {
	p := &domain.Payment{
		Tid:               tx.Tid,
		Reference:         tx.Reference,
		Amount:            tx.Amount,
		Method:            domain.PaymentMethod(tx.Kind),
		ReturnCode:        tx.ReturnCode,
		ReturnMessage:     tx.ReturnMessage,
		Nsu:               tx.Nsu,
		AuthorizationCode: tx.AuthorizationCode,
		RefundID:          tx.RefundID,
		ProcessedAt:       time.Now().UTC(),
	}

	if auth := tx.Authorization; auth != nil {
		p.Tid = auth.Tid
		p.Reference = auth.Reference
		p.Amount = auth.Amount
		p.Method = domain.PaymentMethod(auth.Kind)
		p.ReturnCode = auth.ReturnCode
		p.ReturnMessage = auth.ReturnMessage
		p.Nsu = auth.Nsu
		p.AuthorizationCode = auth.AuthorizationCode
	}

	for _, refund := range tx.Refunds {
		p.Refunds = append(p.Refunds, domain.Refund{RefundID: refund.RefundID, Status: refund.Status, Amount: refund.Amount})
	}

	if tx.ThreeDSecure != nil {
		p.AuthenticationURL = tx.ThreeDSecure.URL
	}

	p.AmountInReais = rede.CentsToDecimal(p.Amount)
	p.Status = paymentStatus(tx, capture)
	return p
}

func paymentStatus(tx *rede.Transaction, capture *bool) domain.PaymentStatus {
	if auth := tx.Authorization; auth != nil {
		switch auth.Status {
		case "Approved":
			if tx.CaptureDetails != nil {
				return domain.PaymentStatusConfirmed
			}
			return domain.PaymentStatusAuthorized
		case "Canceled":
			return domain.PaymentStatusRefunded
		case "Pending":
			return domain.PaymentStatusPending
		}
		return domain.PaymentStatusFailed
	}

	switch {
	case len(tx.Refunds) > 0 || refundReturnCodes[tx.ReturnCode]:
		return domain.PaymentStatusRefunded
	case tx.RequiresAuthentication():
		return domain.PaymentStatusPending
	case tx.IsApproved():
		if capture != nil && !*capture {
			return domain.PaymentStatusAuthorized
		}
		return domain.PaymentStatusConfirmed
	}
	return domain.PaymentStatusFailed
}

func decodeAmount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return 0, false
	}

	amount, err := rede.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return amount, true
}

// writeGatewayError converte erros do SDK em respostas HTTP
func (h *TransactionHandler) writeGatewayError(w http.ResponseWriter, operation string, err error) {
	var apiErr *rede.APIError
	switch {
	case errors.As(err, &apiErr):
		h.logger.Warn("transação recusada pela Rede",
			zap.String("operation", operation),
			zap.Int("status_code", apiErr.Status),
			zap.String("return_code", apiErr.ReturnCode),
		)
		status := apiErr.Status
		if rede.IsServerError(err) || rede.IsUnauthorized(err) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{
			"error":       apiErr.ReturnMessage,
			"return_code": apiErr.ReturnCode,
		})
	case rede.IsOAuthError(err), rede.IsTransportError(err), errors.Is(err, rede.ErrTLSUnsupported):
		h.logger.Error("falha ao comunicar com a Rede", zap.String("operation", operation), zap.Error(err))
		writeError(w, http.StatusBadGateway, "gateway de pagamento indisponível")
	default:
		h.logger.Error("erro ao processar transação", zap.String("operation", operation), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro interno")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
