package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexprep/lexprep/internal/console"
	"github.com/lexprep/lexprep/internal/stages/capverify"
)

type verifyOptions struct {
	ConfigPath string
	Verbose    bool
}

var verifyCmdRunner = runVerify

func newVerifyCmd(root *rootFlags) *cobra.Command {
	opts := verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Smoke-test the installed NLP capabilities without provisioning",
		Long: `Verify runs only the capability smoke tests against an already
provisioned environment. Returns exit code 0 when every capability passes,
exit code 1 otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose

			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}

			return verifyCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to provisioning plan (default: built-in plan)")

	return cmd
}

func runVerify(opts verifyOptions) error {
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

	printer := console.New(os.Stdout)
	printer.Banner("VERIFYING NLP CAPABILITIES")

	verifier := capverify.New(cfg.Settings.Python, cfg.Model.Name, cfg.Capabilities, log)
	results := verifier.Verify(context.Background())

	failed := 0
	for _, res := range results {
		if res.Passed {
			printer.OK(res.Capability + " " + res.Detail)
		} else {
			printer.Error(res.Err.Error())
			failed++
		}
	}

	if failed > 0 {
		printer.Step(fmt.Sprintf("%d of %d capabilities failed; NLP capabilities may be degraded",
			failed, len(results)))
		os.Exit(1)
	}

	printer.OK("all capabilities operational")
	os.Exit(0)
	return nil
}
