package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
)

var billWeeklyCmd = &cobra.Command{
	Use:   "bill-weekly",
	Short: "Genera las facturas semanales de todos los clientes",
	Long: `Agrupa los pedidos completados y sin facturar de la semana ISO actual
(UTC, lunes a domingo) y genera una factura por cliente. Equivale a
POST /api/invoices/weekly sin cuerpo. Pensado para ejecutarse desde cron.`,
	Example: `  # Semana ISO actual, todos los clientes
  admin bill-weekly

  # Rango explícito (RFC 3339)
  admin bill-weekly --week-start 2026-08-24T00:00:00Z --week-end 2026-08-30T23:59:59Z

  # Un solo cliente
  admin bill-weekly --customer cus_1a2b3c`,
	RunE: runBillWeekly,
}

func init() {
	rootCmd.AddCommand(billWeeklyCmd)
	billWeeklyCmd.Flags().String("week-start", "", "Inicio del rango (RFC 3339, por defecto: lunes de la semana actual)")
	billWeeklyCmd.Flags().String("week-end", "", "Fin del rango (RFC 3339, por defecto: domingo de la semana actual)")
	billWeeklyCmd.Flags().StringSlice("customer", nil, "ID de cliente a facturar (repetible, por defecto: todos)")
}

func runBillWeekly(cmd *cobra.Command, args []string) error {
	store, log, err := bootstrap()
	if err != nil {
		return err
	}

	weekStart, _ := cmd.Flags().GetString("week-start")
	weekEnd, _ := cmd.Flags().GetString("week-end")
	customers, _ := cmd.Flags().GetStringSlice("customer")

	weeklyUC := billing.NewWeeklyUseCase(store, log)
	result, err := weeklyUC.Run(cmd.Context(), dto.WeeklyInvoiceRequest{
		CustomerIDs: customers,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
	})
	if err != nil {
		return err
	}

	for _, inv := range result.Invoices {
		log.Info().
			Str("invoice", inv.InvoiceNumber).
			Str("customer", inv.CustomerName).
			Str("total", inv.TotalGross.StringFixed(2)).
			Msg("factura creada")
	}
	if len(result.SkippedCustomers) > 0 {
		log.Warn().
			Strs("customers", result.SkippedCustomers).
			Msg("clientes omitidos (sin pedidos facturables)")
	}
	log.Info().Msg(result.Message)
	return nil
}
