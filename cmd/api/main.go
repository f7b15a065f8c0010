package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"tourguide/cmd/app"
	"tourguide/internal/config"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "tourguide",
	Short: "Tour guide blog API",
	Long: `HTTP API for travel posts: categories, tags, drafts and published
posts with coordinates, and images stored in MinIO.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Migrate(loadConfig())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to .env file (default .env)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() *config.Config {
	if envFile == "" {
		return config.LoadConfig()
	}
	return config.LoadConfig(envFile)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, loadConfig())
	if err != nil {
		return err
	}

	return application.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
