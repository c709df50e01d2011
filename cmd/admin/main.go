package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/billing"
	filestore "github.com/jhoicas/Taller-api/internal/infrastructure/store"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Herramientas administrativas del taller",
	Long: `CLI administrativa que opera directamente sobre el almacén de datos,
sin pasar por el servidor HTTP. Útil para poblar un entorno de pruebas
y para lanzar la facturación semanal desde un cron.`,
	SilenceUsage: true,
}

// bootstrap carga configuración y abre el almacén de archivo. La CLI
// siempre usa el backend de archivo: corre en la misma máquina que el
// servidor y comparte data/db.json.
func bootstrap() (billing.Store, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(cfg.App.Env, "info")
	return filestore.NewFileStore(cfg.Storage.FilePath), log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
