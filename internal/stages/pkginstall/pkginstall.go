// Package pkginstall installs version-constrained packages with the host
// package manager.
package pkginstall

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/model"
	"github.com/lexprep/lexprep/internal/shellexec"
	lexerrors "github.com/lexprep/lexprep/pkg/errors"
)

const stageName = "packages"

// Installer invokes the package manager for a fixed list of requirements.
type Installer struct {
	pip      string
	strategy string
	policy   model.StagePolicy
	items    []string
	log      *logger.Logger
}

// New creates an Installer from the packages stage configuration.
func New(stage config.PackagesStage, pip string, log *logger.Logger) *Installer {
	return &Installer{
		pip:      pip,
		strategy: stage.Strategy,
		policy:   stage.Policy,
		items:    append([]string(nil), stage.Items...),
		log:      log,
	}
}

// Name identifies the stage in reports.
func (in *Installer) Name() string { return stageName }

// Title is the banner shown while the stage runs.
func (in *Installer) Title() string { return "Installing Python packages" }

// Policy returns the stage's fatality class.
func (in *Installer) Policy() model.StagePolicy { return in.policy }

// Remediation is the equivalent manual command an operator can run.
func (in *Installer) Remediation() string {
	return fmt.Sprintf("%s install %s", in.pip, strings.Join(in.items, " "))
}

// Run installs every requirement. The batched strategy issues a single
// package manager call listing all items together; per-item issues one call
// per requirement and stops at the first failure.
func (in *Installer) Run(ctx context.Context) model.ExecutionOutcome {
	in.log.WithFields(map[string]any{
		"stage":    stageName,
		"strategy": in.strategy,
		"count":    len(in.items),
	}).Info("installing packages")

	batches := [][]string{in.items}
	if in.strategy == config.StrategyPerItem {
		batches = batches[:0]
		for _, item := range in.items {
			batches = append(batches, []string{item})
		}
	}

	for _, batch := range batches {
		args := append([]string{"install"}, batch...)
		res, err := shellexec.Run(ctx, in.pip, args...)
		if err != nil {
			failure := classify(res, err)
			in.log.Error(failure, "package installation failed")
			return model.ExecutionOutcome{Output: failure.Error()}
		}
	}

	return model.ExecutionOutcome{
		Success: true,
		Output:  fmt.Sprintf("installed %d packages", len(in.items)),
	}
}

func classify(res shellexec.Result, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return lexerrors.NewExecutionError(stageName, shellexec.PrimaryOutput(res), err)
	}
	return lexerrors.NewLaunchError(stageName, err)
}
