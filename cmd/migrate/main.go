package main

import (
	"errors"
	"flag"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/litethinking/gestion-api/pkg/config"
	"github.com/litethinking/gestion-api/pkg/logger"
)

// CLI de migraciones: go run ./cmd/migrate -cmd up
func main() {
	var command string
	var path string
	flag.StringVar(&command, "cmd", "up", "comando: up, down, version, force")
	flag.StringVar(&path, "path", "file://migrations", "origen de las migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "migrate"})

	m, err := migrate.New(path, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("crear instancia de migrate")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migración up")
		}
		log.Info().Msg("migraciones up aplicadas")

	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migración down")
		}
		log.Info().Msg("última migración revertida")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("consultar versión")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")

	case "force":
		if flag.NArg() < 1 {
			log.Fatal().Msg("force requiere el número de versión")
		}
		v, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.Fatal().Err(err).Msg("versión inválida")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("forzar versión")
		}
		log.Info().Int("version", v).Msg("versión forzada")

	default:
		log.Fatal().Str("cmd", command).Msg("comando desconocido (use up, down, version, force)")
	}
}
