// Package ports define as interfaces (portas) para adaptadores externos
// Seguindo o padrão Hexagonal Architecture / Ports & Adapters
package ports

import (
	"context"

	"github.com/magnani/erede-go/rede"
)

// TransactionGateway define as operações de adquirência usadas pelos handlers.
// Implementada por *rede.Client.
type TransactionGateway interface {
	// Create autoriza (e captura, conforme tx.Capture) uma transação
	Create(ctx context.Context, tx *rede.Transaction) (*rede.Transaction, error)

	// Capture captura uma transação autorizada
	Capture(ctx context.Context, tid string, amount int64) (*rede.Transaction, error)

	// Cancel cancela (estorna) uma transação
	Cancel(ctx context.Context, tid string, amount int64) (*rede.Transaction, error)

	// Get consulta uma transação pelo tid
	Get(ctx context.Context, tid string) (*rede.Transaction, error)

	// GetByReference consulta uma transação pela referência do pedido
	GetByReference(ctx context.Context, reference string) (*rede.Transaction, error)

	// GetRefunds lista os cancelamentos de uma transação
	GetRefunds(ctx context.Context, tid string) (*rede.Transaction, error)
}

// Garante que rede.Client implementa TransactionGateway
var _ TransactionGateway = (*rede.Client)(nil)
