package rede

import "regexp"

// sensitiveFields casa número do cartão, nome do portador e CVV em um body JSON
var sensitiveFields = regexp.MustCompile(`(?i)"(cardHolderName|cardnumber|securitycode)":"[^"]+"`)

// Redact mascara os dados sensíveis do cartão antes de ir para o log
func Redact(body string) string {
	return sensitiveFields.ReplaceAllString(body, `"$1":"***"`)
}
