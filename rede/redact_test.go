package rede

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"card number", `{"cardNumber":"4111111111111111"}`, `{"cardNumber":"***"}`},
		{"case insensitive key", `{"CARDNUMBER":"4111111111111111"}`, `{"CARDNUMBER":"***"}`},
		{"holder and cvv", `{"cardHolderName":"John Doe","securityCode":"123","amount":100}`, `{"cardHolderName":"***","securityCode":"***","amount":100}`},
		{"other fields untouched", `{"reference":"pedido-1","kind":"credit"}`, `{"reference":"pedido-1","kind":"credit"}`},
		{"empty", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.in))
		})
	}
}
