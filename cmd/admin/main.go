package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/config"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	"github.com/segyhp/loan-backoffice/internal/scheduler"
	"github.com/segyhp/loan-backoffice/internal/service"
	"github.com/segyhp/loan-backoffice/internal/storage"
	"github.com/segyhp/loan-backoffice/pkg/logger"
	"github.com/segyhp/loan-backoffice/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "backoffice-admin",
		Short:        "Operator tooling for the loan back office",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(addRateCmd())
	rootCmd.AddCommand(snapshotCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads configuration and opens the database for a single command.
func connect() (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.New(cfg.Logging.Level, cfg.Logging.Format)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func createUserCmd() *cobra.Command {
	var req domain.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an operator account (use --rol admin for the first administrator)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Struct(req); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}

			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			users := service.NewUserService(repository.NewUserRepository(db), nil)
			user, err := users.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d creado (%s, rol %s)\n", user.ID, user.NationalID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "nombre", "", "Full name")
	cmd.Flags().StringVar(&req.NationalID, "cedula", "", "National id used to log in")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&req.Role, "rol", domain.RoleOperator, "Role (admin or operador)")
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("cedula")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func addRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-rate [valor]",
		Short: "Record a new exchange rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			if !value.IsPositive() {
				return fmt.Errorf("rate must be positive, got %s", value)
			}
			if !utils.FitsScale(value, 4) {
				return fmt.Errorf("rate %s has more than 4 decimals", value)
			}

			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			rates := service.NewRateService(repository.NewRateRepository(db))
			rate, err := rates.Create(cmd.Context(), domain.CreateRateRequest{Value: value})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tasa %d registrada: %s (%s)\n", rate.ID, rate.Value, rate.Date.Format(time.RFC3339))
			return nil
		},
	}
}

func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Render and store the account-status snapshot now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			store, err := storage.NewFromConfig(cfg.Storage)
			if err != nil {
				return err
			}

			reports := service.NewReportService(repository.NewReportRepository(db), repository.NewLoanRepository(db), cache.Noop{}, cfg)
			snapshot := scheduler.NewSnapshot(service.NewExportService(reports), store, cfg.Storage.Retention)

			locations, err := snapshot.Run(context.Background())
			if err != nil {
				return err
			}
			for _, loc := range locations {
				fmt.Fprintln(cmd.OutOrStdout(), loc)
			}
			return nil
		},
	}
}
