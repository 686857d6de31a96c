package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Precios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Precios-api/pkg/config"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

const (
	dsnFlag        = "dsn"
	migrationsFlag = "migrations-path"
	downFlag       = "down"
)

func main() {
	dsn := pflag.StringP(dsnFlag, "d", "", "connection string (por defecto DATABASE_URL / DB_*)")
	dir := pflag.StringP(migrationsFlag, "m", "migrations", "directorio con los *.sql")
	down := pflag.Bool(downFlag, false, "revertir todas las migraciones")
	pflag.Parse()

	log := logger.New(logger.Config{Env: os.Getenv("APP_ENV"), Level: "info"})

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Error().Err(err).Msg("config")
			os.Exit(2)
		}
		*dsn = cfg.DB.ConnectionString()
	}
	if *dir == "" {
		log.Error().Err(fmt.Errorf("--%s flag: required", migrationsFlag)).Msg("faltan argumentos")
		os.Exit(2)
	}

	if err := postgres.Migrate(*dsn, *dir, !*down, log); err != nil {
		log.Error().Err(err).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Bool("down", *down).Msg("migraciones aplicadas")
}
