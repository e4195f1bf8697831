package rede

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount converte um valor em reais ("10.50") para centavos (1050)
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("valor inválido %q: %w", s, err)
	}
	return AmountToCents(d)
}

// AmountToCents converte reais para centavos; rejeita valores negativos e
// mais de duas casas decimais
func AmountToCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("valor negativo: %s", d)
	}
	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("valor com mais de duas casas decimais: %s", d)
	}
	return cents.IntPart(), nil
}

// CentsToDecimal converte centavos para reais
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
