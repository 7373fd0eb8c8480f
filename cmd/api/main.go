package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/care-api/internal/catalog"
	"github.com/jwalitptl/care-api/internal/config"
	"github.com/jwalitptl/care-api/internal/repository/postgres"
	"github.com/jwalitptl/care-api/internal/service/search"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "care-api",
		Short:        "Doctor discovery, booking and vitals API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(searchCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	appLogger := newLogger(cfg)

	app, err := buildApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := app.bookings.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("booking listeners did not finish")
	}

	log.Info().Msg("server exited properly")
	return nil
}

func searchCmd(configPath *string) *cobra.Command {
	var in search.CriteriaInput

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter the doctor catalog and print the matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				in.Query = args[0]
			}

			criteria, err := search.ParseCriteria(in)
			if err != nil {
				return err
			}

			store, err := catalog.LoadFile(cfg.Catalog.File)
			if err != nil {
				return err
			}

			svc := search.NewService(store, logger.Nop(), metrics.NewNop())
			res := svc.Search(cmd.Context(), criteria, in.Expanded)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tRATING\tEXPERIENCE\tAVAILABLE")
			for _, d := range res.Doctors {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%s\t%s\n",
					d.ID, d.Name, d.Specialty.Label(), d.Rating, d.Experience, strconv.FormatBool(d.Available))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d doctors", len(res.Doctors), res.Total)
			if res.HasMore && !res.Expanded {
				fmt.Fprint(cmd.OutOrStdout(), " (use --all to see every match)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Specialty, "specialty", "", "specialty id, e.g. cardiology")
	cmd.Flags().StringVar(&in.Experience, "experience", "", "junior, mid or senior")
	cmd.Flags().StringVar(&in.Availability, "availability", "", "available, today or week")
	cmd.Flags().StringVar(&in.Rating, "rating", "", "minimum rating: 4+, 4.5+ or 4.8+")
	cmd.Flags().BoolVar(&in.Expanded, "all", false, "show every match instead of the top three")

	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables used by the postgres drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			dsns := map[string]bool{}
			if cfg.Preferences.Driver == "postgres" {
				dsns[cfg.Preferences.Postgres] = true
			}
			if cfg.Vitals.Driver == "postgres" {
				dsns[cfg.Vitals.Postgres] = true
			}
			if len(dsns) == 0 {
				return errors.New("no postgres driver configured")
			}

			for dsn := range dsns {
				db, err := postgres.NewDB(dsn)
				if err != nil {
					return err
				}
				err = postgres.Migrate(cmd.Context(), db)
				db.Close()
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
