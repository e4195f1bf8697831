package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magnani/erede-go/internal/config"
	"github.com/magnani/erede-go/rede"
)

// newClient carrega a configuração do ambiente e cria o cliente e.Rede
func newClient(cmd *cobra.Command) (*rede.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	return cfg.Rede.NewClient(logger)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Obtém um bearer token OAuth2 e mostra seu vencimento",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			if _, err := client.Token(cmd.Context()); err != nil {
				return err
			}

			token, expiresAt, _ := client.Store().BearerToken()
			return printJSON(map[string]string{
				"access_token": token,
				"expires_at":   time.Unix(expiresAt, 0).Format(time.RFC3339),
			})
		},
	}
}

func authorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Cria uma transação de crédito (captura opcional)",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			amountStr, _ := flags.GetString("amount")
			reference, _ := flags.GetString("reference")
			number, _ := flags.GetString("card")
			cvv, _ := flags.GetString("cvv")
			month, _ := flags.GetInt("month")
			year, _ := flags.GetInt("year")
			holder, _ := flags.GetString("holder")
			installments, _ := flags.GetInt("installments")
			capture, _ := flags.GetBool("capture")

			amount, err := rede.ParseAmount(amountStr)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			tx := rede.NewTransaction(amount, reference).
				CreditCard(number, cvv, month, year, holder).
				SetCapture(capture)
			tx.Installments = installments

			result, err := client.Create(cmd.Context(), tx)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("amount", "a", "", "Valor em reais (ex: 20.99)")
	cmd.Flags().StringP("reference", "r", "", "Referência do pedido")
	cmd.Flags().String("card", "", "Número do cartão")
	cmd.Flags().String("cvv", "", "Código de segurança")
	cmd.Flags().Int("month", 0, "Mês de vencimento")
	cmd.Flags().Int("year", 0, "Ano de vencimento")
	cmd.Flags().String("holder", "", "Nome do portador")
	cmd.Flags().Int("installments", 0, "Número de parcelas")
	cmd.Flags().Bool("capture", true, "Captura automática")
	for _, name := range []string{"amount", "reference", "card", "month", "year"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

func captureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture [tid]",
		Short: "Captura uma transação autorizada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmountCommand(cmd, args[0], func(client *rede.Client, amount int64) (*rede.Transaction, error) {
				return client.Capture(cmd.Context(), args[0], amount)
			})
		},
	}

	cmd.Flags().StringP("amount", "a", "", "Valor em reais a capturar")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func cancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [tid]",
		Short: "Cancela (estorna) uma transação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmountCommand(cmd, args[0], func(client *rede.Client, amount int64) (*rede.Transaction, error) {
				return client.Cancel(cmd.Context(), args[0], amount)
			})
		},
	}

	cmd.Flags().StringP("amount", "a", "", "Valor em reais a cancelar")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func runAmountCommand(cmd *cobra.Command, tid string, op func(*rede.Client, int64) (*rede.Transaction, error)) error {
	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := rede.ParseAmount(amountStr)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	result, err := op(client, amount)
	if err != nil {
		return fmt.Errorf("tid %s: %w", tid, err)
	}
	return printJSON(result)
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [tid]",
		Short: "Consulta uma transação pelo tid ou pela referência",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference, _ := cmd.Flags().GetString("reference")
			if len(args) == 0 && reference == "" {
				return fmt.Errorf("informe o tid ou --reference")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			var result *rede.Transaction
			if reference != "" {
				result, err = client.GetByReference(cmd.Context(), reference)
			} else {
				result, err = client.Get(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("reference", "r", "", "Referência do pedido")
	return cmd
}

func refundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refunds [tid]",
		Short: "Lista os cancelamentos de uma transação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			result, err := client.GetRefunds(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
