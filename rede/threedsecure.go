package rede

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// OnFailure define o que fazer quando a autenticação 3DS falha
type OnFailure string

const (
	OnFailureContinue OnFailure = "continue"
	OnFailureDecline  OnFailure = "decline"
)

// ThreeDSDataOnly indica autenticação apenas com envio de dados (sem desafio)
const ThreeDSDataOnly = "DATA_ONLY"

// ThreeDSv1Cutoff é a data a partir da qual o 3DS 1 deixou de ser aceito
var ThreeDSv1Cutoff = time.Date(2022, time.October, 15, 0, 0, 0, 0, time.UTC)

// DeprecationPolicy decide como tratar threeDIndicator abaixo de "2".
// Antes de Cutoff o uso gera apenas um aviso; depois, um erro.
type DeprecationPolicy struct {
	Cutoff time.Time
	Now    func() time.Time
}

// DefaultDeprecationPolicy usa ThreeDSv1Cutoff e o relógio do sistema
func DefaultDeprecationPolicy() DeprecationPolicy {
	return DeprecationPolicy{Cutoff: ThreeDSv1Cutoff, Now: time.Now}
}

// Check retorna nil para indicadores >= 2 (ou não numéricos), um
// *DeprecationWarning antes do cutoff e ErrThreeDSv1Discontinued depois.
// Indicador vazio equivale à versão 1.
func (p DeprecationPolicy) Check(indicator string) error {
	if trimmed := strings.TrimSpace(indicator); trimmed != "" {
		version, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || version >= 2 {
			return nil
		}
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	if now().After(p.Cutoff) {
		return ErrThreeDSv1Discontinued
	}
	return &DeprecationWarning{Indicator: indicator, Cutoff: p.Cutoff}
}

// ThreeDSecure descreve os dados de autenticação 3-D Secure anexados a uma transação
type ThreeDSecure struct {
	Embedded                     bool
	OnFailure                    OnFailure
	Cavv                         string
	Eci                          string
	URL                          string
	UserAgent                    string
	Xid                          string
	DirectoryServerTransactionID string
	ChallengePreference          *string

	// Preenchidos na resposta
	ReturnCode    string
	ReturnMessage string

	threeDIndicator string
	policy          *DeprecationPolicy
}

// NewThreeDSecure cria os dados 3DS. userAgent vazio usa o User-Agent do SDK;
// em integrações web deve ser o User-Agent do navegador do portador.
func NewThreeDSecure(embedded bool, onFailure OnFailure, userAgent string) *ThreeDSecure {
	if onFailure == "" {
		onFailure = OnFailureDecline
	}
	if userAgent == "" {
		userAgent = "eRede/" + Version + " (Go)"
	}

	return &ThreeDSecure{
		Embedded:        embedded,
		OnFailure:       onFailure,
		UserAgent:       userAgent,
		threeDIndicator: "1",
	}
}

// ThreeDIndicator retorna a versão do protocolo 3DS ("1" por padrão)
func (t *ThreeDSecure) ThreeDIndicator() string {
	if t.threeDIndicator == "" {
		return "1"
	}
	return t.threeDIndicator
}

// SetThreeDIndicator define a versão do protocolo 3DS.
//
// Valores abaixo de "2" passam pela DeprecationPolicy: antes do cutoff o valor
// é aceito e um *DeprecationWarning é retornado; depois, o valor é rejeitado
// com ErrThreeDSv1Discontinued.
func (t *ThreeDSecure) SetThreeDIndicator(indicator string) error {
	policy := DefaultDeprecationPolicy()
	if t.policy != nil {
		policy = *t.policy
	}

	err := policy.Check(indicator)
	if errors.Is(err, ErrThreeDSv1Discontinued) {
		return err
	}

	t.threeDIndicator = indicator
	return err
}

// SetDeprecationPolicy troca a política usada por SetThreeDIndicator
func (t *ThreeDSecure) SetDeprecationPolicy(p DeprecationPolicy) *ThreeDSecure {
	t.policy = &p
	return t
}

func (t *ThreeDSecure) SetChallengePreference(preference string) *ThreeDSecure {
	t.ChallengePreference = &preference
	return t
}

type threeDSecureJSON struct {
	Embedded                     *bool   `json:"embedded,omitempty"`
	OnFailure                    string  `json:"onFailure,omitempty"`
	Cavv                         string  `json:"cavv,omitempty"`
	Eci                          string  `json:"eci,omitempty"`
	URL                          string  `json:"url,omitempty"`
	UserAgent                    string  `json:"userAgent,omitempty"`
	Xid                          string  `json:"xid,omitempty"`
	ThreeDIndicator              string  `json:"threeDIndicator,omitempty"`
	DirectoryServerTransactionID string  `json:"DirectoryServerTransactionId,omitempty"`
	ChallengePreference          *string `json:"challengePreference,omitempty"`
	ReturnCode                   string  `json:"returnCode,omitempty"`
	ReturnMessage                string  `json:"returnMessage,omitempty"`
}

// MarshalJSON serializa no formato esperado pela API (campos vazios omitidos)
func (t *ThreeDSecure) MarshalJSON() ([]byte, error) {
	embedded := t.Embedded
	return json.Marshal(threeDSecureJSON{
		Embedded:                     &embedded,
		OnFailure:                    string(t.OnFailure),
		Cavv:                         t.Cavv,
		Eci:                          t.Eci,
		URL:                          t.URL,
		UserAgent:                    t.UserAgent,
		Xid:                          t.Xid,
		ThreeDIndicator:              t.ThreeDIndicator(),
		DirectoryServerTransactionID: t.DirectoryServerTransactionID,
		ChallengePreference:          t.ChallengePreference,
	})
}

// UnmarshalJSON lê o bloco threeDSecure da resposta sem passar pela política
func (t *ThreeDSecure) UnmarshalJSON(data []byte) error {
	var raw threeDSecureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Embedded = raw.Embedded == nil || *raw.Embedded
	t.OnFailure = OnFailure(raw.OnFailure)
	t.Cavv = raw.Cavv
	t.Eci = raw.Eci
	t.URL = raw.URL
	t.UserAgent = raw.UserAgent
	t.Xid = raw.Xid
	t.threeDIndicator = raw.ThreeDIndicator
	t.DirectoryServerTransactionID = raw.DirectoryServerTransactionID
	t.ChallengePreference = raw.ChallengePreference
	t.ReturnCode = raw.ReturnCode
	t.ReturnMessage = raw.ReturnMessage
	return nil
}
