package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
)

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "Lista los códigos ISO-4217 aceptados y sus decimales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := currency.NewISOCatalog()
			out := cmd.OutOrStdout()
			for _, code := range catalog.Codes() {
				fmt.Fprintf(out, "%s\t%d\n", code, catalog.Scale(code))
			}
			fmt.Fprintf(out, "total: %d\n", catalog.Len())
			return nil
		},
	}
}
