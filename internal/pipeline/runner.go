// Package pipeline sequences the provisioning stages and assembles the
// final report.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/console"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/model"
	"github.com/lexprep/lexprep/internal/stages/capverify"
	"github.com/lexprep/lexprep/internal/stages/corpusfetch"
	"github.com/lexprep/lexprep/internal/stages/modelfetch"
	"github.com/lexprep/lexprep/internal/stages/pkginstall"
)

// Stage is one ordered unit of provisioning work.
type Stage interface {
	Name() string
	Title() string
	Policy() model.StagePolicy
	Remediation() string
	Run(ctx context.Context) model.ExecutionOutcome
}

// Verifier produces one result per declared capability, never halting.
type Verifier interface {
	Verify(ctx context.Context) []model.VerificationResult
}

// Runner executes stages in fixed order, applying each stage's fatality
// policy, then runs verification when every earlier stage allowed it.
type Runner struct {
	stages   []Stage
	verifier Verifier
	printer  *console.Printer
	log      *logger.Logger
}

// NewRunner assembles a Runner from explicit parts. Tests substitute stubs
// here; production code uses FromConfig.
func NewRunner(stages []Stage, verifier Verifier, printer *console.Printer, log *logger.Logger) *Runner {
	return &Runner{stages: stages, verifier: verifier, printer: printer, log: log}
}

// FromConfig builds the real four-stage pipeline for a provisioning plan.
func FromConfig(cfg *config.Config, printer *console.Printer, log *logger.Logger) *Runner {
	stages := []Stage{
		pkginstall.New(cfg.Packages, cfg.Settings.Pip, log),
		modelfetch.New(cfg.Model, cfg.Settings.Python, log),
		corpusfetch.New(cfg.Corpora, log),
	}
	verifier := capverify.New(cfg.Settings.Python, cfg.Model.Name, cfg.Capabilities, log)
	return NewRunner(stages, verifier, printer, log)
}

// Run executes the pipeline. A failed fatal stage halts immediately; its
// diagnostic and remediation hint are printed and remaining stages never
// run. Verification failures are collected and reported, never fatal.
func (r *Runner) Run(ctx context.Context) *model.PipelineReport {
	report := &model.PipelineReport{}
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	for _, stage := range r.stages {
		r.printer.Banner(bannerTitle(stage.Title()))
		r.printer.Step(stage.Title())

		stageStart := time.Now()
		outcome := stage.Run(ctx)
		report.Stages = append(report.Stages, model.StageOutcome{
			Name:     stage.Name(),
			Policy:   stage.Policy(),
			Outcome:  outcome,
			Duration: time.Since(stageStart),
		})

		if outcome.Success {
			r.printer.OK(outcome.Output)
			continue
		}

		r.printer.Error(outcome.Output)
		r.printer.Hint(stage.Remediation())

		if stage.Policy() == model.PolicyFatal {
			r.log.WithFields(map[string]any{"stage": stage.Name()}).Warn("fatal stage failed; halting pipeline")
			r.printer.Summary(report)
			return report
		}
	}

	r.printer.Banner("VERIFYING NLP CAPABILITIES")
	report.Verifications = r.verifier.Verify(ctx)
	for _, res := range report.Verifications {
		if res.Passed {
			r.printer.OK(res.Capability + " " + res.Detail)
		} else {
			r.printer.Error(res.Err.Error())
		}
	}

	r.printer.Summary(report)
	return report
}

func bannerTitle(title string) string {
	return strings.ToUpper(title)
}
