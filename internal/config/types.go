package config

import (
	"github.com/lexprep/lexprep/internal/model"
)

// Config represents a full provisioning plan.
type Config struct {
	Version      string        `yaml:"version" validate:"required,semver"`
	Name         string        `yaml:"name" validate:"required,min=1,max=100"`
	Description  string        `yaml:"description,omitempty"`
	Settings     Settings      `yaml:"settings,omitempty"`
	Packages     PackagesStage `yaml:"packages" validate:"required"`
	Model        ModelStage    `yaml:"model" validate:"required"`
	Corpora      CorporaStage  `yaml:"corpora" validate:"required"`
	Capabilities []string      `yaml:"capabilities" validate:"required,min=1,dive,capability"`
}

// Settings holds global execution parameters.
type Settings struct {
	Python  string `yaml:"python,omitempty"`
	Pip     string `yaml:"pip,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Install strategies for the package stage. Batched issues one package
// manager call listing every requirement; per-item issues one call each.
const (
	StrategyBatched = "batched"
	StrategyPerItem = "per_item"
)

// PackagesStage installs version-constrained packages with the host package
// manager.
type PackagesStage struct {
	Policy   model.StagePolicy `yaml:"policy,omitempty" validate:"omitempty,oneof=fatal soft"`
	Strategy string            `yaml:"strategy,omitempty" validate:"omitempty,oneof=batched per_item"`
	Items    []string          `yaml:"items" validate:"required,min=1,dive,requirement"`
}

// ModelStage downloads one pretrained language model.
type ModelStage struct {
	Policy model.StagePolicy `yaml:"policy,omitempty" validate:"omitempty,oneof=fatal soft"`
	Name   string            `yaml:"name" validate:"required,model_name"`
}

// CorporaStage populates the local corpus cache from a remote registry.
// InsecureTLS is the one-time, best-effort certificate-trust relaxation;
// it is scoped to this stage's HTTP client, not the whole process.
type CorporaStage struct {
	Policy      model.StagePolicy `yaml:"policy,omitempty" validate:"omitempty,oneof=fatal soft"`
	RegistryURL string            `yaml:"registry_url,omitempty" validate:"omitempty,url"`
	DataDir     string            `yaml:"data_dir,omitempty"`
	InsecureTLS bool              `yaml:"insecure_tls,omitempty"`
	Names       []string          `yaml:"names" validate:"required,min=1,dive,corpus_name"`
}
