package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/bootstrap"
	infraai "github.com/jhoicas/Operaciones-api/internal/infrastructure/ai"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/seed"
	"github.com/jhoicas/Operaciones-api/pkg/config"
	pkgjwt "github.com/jhoicas/Operaciones-api/pkg/jwt"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes en PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			if cfg.DB.Driver != config.DriverPostgres {
				return errors.New("migrate requiere DB_DRIVER=postgres")
			}
			ctx := cmd.Context()
			dsn := cfg.DB.ConnectionString()
			if err := postgres.Migrate(ctx, dsn); err != nil {
				return err
			}
			version, err := postgres.MigrationVersion(ctx, dsn)
			if err != nil {
				return err
			}
			log.Info().Int64("version", version).Msg("migraciones aplicadas")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga el catálogo de demostración (idempotente)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			if cfg.DB.Driver != config.DriverPostgres {
				log.Warn().Msg("DB_DRIVER=memory ya arranca sembrado; nada que persistir")
				return nil
			}
			stores, err := bootstrap.OpenStores(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer stores.Close()
			if err := seed.Apply(cmd.Context(), stores.Seed); err != nil {
				return err
			}
			log.Info().Msg("catálogo de demostración cargado")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var userID, companyID, role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT firmado con JWT_SECRET (pruebas locales)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := pkgjwt.Generate(cfg.JWT.Secret, userID, companyID, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "operador", "ID del usuario")
	cmd.Flags().StringVarP(&companyID, "company", "c", "1", "ID de la empresa")
	cmd.Flags().StringVarP(&role, "role", "r", "CEO", "Rol (ADMIN habilita /api/companies y PUT /api/company/modules)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}

func exportCmd() *cobra.Command {
	var companyID, category, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el catálogo de productos de una empresa a XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			stores, err := bootstrap.OpenStores(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer stores.Close()

			c := bootstrap.Build(cfg, stores, infraai.NewFromConfig(cfg.AI), nil, log)
			data, name, err := c.Export.Export(ctx, companyID, dto.ProductFilter{Category: category})
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			log.Info().Str("archivo", out).Int("bytes", len(data)).Msg("exportación generada")
			return nil
		},
	}
	cmd.Flags().StringVarP(&companyID, "company", "c", "1", "ID de la empresa")
	cmd.Flags().StringVar(&category, "category", "", "Filtrar por categoría")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Archivo de salida (por defecto el nombre sugerido)")
	return cmd
}
