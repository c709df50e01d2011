package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Puebla el almacén con datos de demostración",
	Long: `Crea un cliente de demostración con varios pedidos completados en la
semana actual, listos para facturar con "admin bill-weekly" o desde la UI.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("customer", "Autohaus Beispiel GmbH", "Nombre del cliente de demostración")
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, log, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("customer")

	customerUC := billing.NewCustomerUseCase(store)
	customer, err := customerUC.Create(ctx, dto.CreateCustomerRequest{
		Name:      name,
		ShortName: "Beispiel",
		Address:   "Beispielweg 12, 34567 Musterstadt",
		Email:     "buchhaltung@beispiel.example",
	})
	if err != nil {
		return err
	}

	orderUC := billing.NewOrderUseCase(store)
	orders, err := orderUC.Create(ctx, dto.CreateOrdersRequest{
		CustomerID:  customer.ID,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Orders: []dto.OrderLineRequest{
			{
				VIN:             "WAUZZZ8V5KA123456",
				LicensePlate:    "M-AB 1234",
				VehicleModel:    "Audi A3",
				BaseServiceID:   "basic",
				AddonServiceIDs: []string{"polish"},
			},
			{
				VIN:           "WVWZZZ1KZAW654321",
				LicensePlate:  "M-CD 5678",
				VehicleModel:  "VW Golf",
				BaseServiceID: "premium",
			},
			{
				LicensePlate:    "M-EF 9012",
				VehicleModel:    "BMW 320d",
				BaseServiceID:   "showroom",
				AddonServiceIDs: []string{"ozone", "seal"},
				Notes:           "Rückläufer Leasing",
			},
		},
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("customer_id", customer.ID).
		Int("orders", len(orders)).
		Msg("datos de demostración creados")
	return nil
}
