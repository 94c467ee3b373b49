// Package cmd implements the zerowaste command line.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ishantk2507/ZeroWasteAI/app"
	"github.com/ishantk2507/ZeroWasteAI/config"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/infra/logger"
)

var (
	cfgPath string
	envPath string
)

var rootCmd = &cobra.Command{
	Use:          "zerowaste",
	Short:        "Perishable inventory redistribution",
	SilenceUsage: true,
	RunE:         serve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file with ZW_ overrides")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// newService loads the configuration and the CSV snapshot.
func newService() (*app.Service, model.Snapshot, error) {
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, model.Snapshot{}, fmt.Errorf("load %s: %w", envPath, err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, model.Snapshot{}, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return nil, model.Snapshot{}, err
	}
	snap, err := svc.LoadData()
	if err != nil {
		closeService(svc)
		return nil, model.Snapshot{}, fmt.Errorf("load data: %w", err)
	}
	return svc, snap, nil
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, snap, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)
	logger.New("main").Infof("serving requests over %d items", len(snap.Items))
	return svc.Run(ctx)
}
