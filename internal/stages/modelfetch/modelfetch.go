// Package modelfetch downloads one pretrained language model through the
// interpreter's model-acquisition entry point.
package modelfetch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/model"
	"github.com/lexprep/lexprep/internal/shellexec"
	lexerrors "github.com/lexprep/lexprep/pkg/errors"
)

const stageName = "model"

// Fetcher retrieves exactly one named model.
type Fetcher struct {
	python    string
	modelName string
	policy    model.StagePolicy
	log       *logger.Logger
}

// New creates a Fetcher from the model stage configuration.
func New(stage config.ModelStage, python string, log *logger.Logger) *Fetcher {
	return &Fetcher{
		python:    python,
		modelName: stage.Name,
		policy:    stage.Policy,
		log:       log,
	}
}

// Name identifies the stage in reports.
func (f *Fetcher) Name() string { return stageName }

// Title is the banner shown while the stage runs.
func (f *Fetcher) Title() string { return "Downloading language model" }

// Policy returns the stage's fatality class.
func (f *Fetcher) Policy() model.StagePolicy { return f.policy }

// Remediation is the equivalent manual command an operator can run.
func (f *Fetcher) Remediation() string {
	return fmt.Sprintf("%s -m spacy download %s", f.python, f.modelName)
}

// Run invokes the model downloader once.
func (f *Fetcher) Run(ctx context.Context) model.ExecutionOutcome {
	f.log.WithFields(map[string]any{
		"stage": stageName,
		"model": f.modelName,
	}).Info("downloading model")

	res, err := shellexec.Run(ctx, f.python, "-m", "spacy", "download", f.modelName)
	if err != nil {
		var failure error
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure = lexerrors.NewExecutionError(stageName, shellexec.PrimaryOutput(res), err)
		} else {
			failure = lexerrors.NewLaunchError(stageName, err)
		}
		f.log.Error(failure, "model download failed")
		return model.ExecutionOutcome{Output: failure.Error()}
	}

	return model.ExecutionOutcome{
		Success: true,
		Output:  fmt.Sprintf("model %s ready", f.modelName),
	}
}
