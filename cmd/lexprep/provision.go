package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/console"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/pipeline"
)

type provisionOptions struct {
	ConfigPath string
	Verbose    bool
}

var provisionCmdRunner = runProvision

func newProvisionCmd(root *rootFlags) *cobra.Command {
	opts := provisionOptions{}

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Install packages, the language model, and corpora, then verify",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose

			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}

			return provisionCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to provisioning plan (default: built-in plan)")

	return cmd
}

func runProvision(opts provisionOptions) error {
	cfg, err := loadPlan(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading provisioning plan: %v\n", err)
		os.Exit(2)
	}

	log, err := newLogger(opts.Verbose || cfg.Settings.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	log.WithFields(map[string]any{
		"plan":     cfg.Name,
		"packages": len(cfg.Packages.Items),
		"corpora":  len(cfg.Corpora.Names),
	}).Info("starting provisioning")

	printer := console.New(os.Stdout)
	runner := pipeline.FromConfig(cfg, printer, log)
	report := runner.Run(context.Background())

	log.WithFields(map[string]any{
		"stages":   len(report.Stages),
		"failed":   len(report.FailedCapabilities()),
		"duration": report.Duration.String(),
	}).Info("provisioning finished")

	os.Exit(report.ExitCode())
	return nil
}

func loadPlan(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.ParseConfig(path)
}

func newLogger(verbose bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}
