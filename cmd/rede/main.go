// Package main implementa a CLI "rede" para operar transações na e.Rede
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "rede",
		Short:        "rede - CLI para a API e.Rede",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Loga requisições e respostas (dados do cartão mascarados)")

	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(authorizeCmd())
	rootCmd.AddCommand(captureCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(refundsCmd())
	rootCmd.AddCommand(cancelCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
