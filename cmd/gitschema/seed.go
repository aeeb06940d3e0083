package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitschema/gitschema"
	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/internal/log"
)

func seedCmd() *cobra.Command {
	var (
		envFile string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Provision projects, environments, and repositories from a YAML file",
		Long: `Provision projects, environments, instances, databases, approval
policies, and webhook-bound repositories from a YAML seed file.

Seeding is idempotent per run but not deduplicating: applying the same file
twice creates duplicate records. Apply a seed once against a fresh database,
then point provider webhooks at the provisioned endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(envFile, file)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&file, "file", "", "Path to the YAML seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(envFile, file string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	seed, err := service.ParseSeed(data)
	if err != nil {
		return err
	}

	client, err := gitschema.New(
		gitschema.WithDatabaseURL(cfg.DBURL()),
		gitschema.WithLogger(slogger),
	)
	if err != nil {
		return fmt.Errorf("create gitschema client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close gitschema client", slog.Any("error", err))
		}
	}()

	if err := client.Bootstrap.Apply(context.Background(), seed); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}

	slogger.Info("seed applied", slog.String("file", file))
	return nil
}
