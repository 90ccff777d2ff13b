package config

import (
	"github.com/lexprep/lexprep/internal/model"
)

// DefaultRegistryURL is the corpus package index used when a plan does not
// name its own registry.
const DefaultRegistryURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages"

// DefaultConfig returns the built-in provisioning plan used when the CLI is
// invoked without a config file.
func DefaultConfig() *Config {
	cfg := &Config{
		Version: "1.0",
		Name:    "nlp-environment",
		Packages: PackagesStage{
			Items: []string{
				"spacy==3.7.2",
				"nltk==3.8.1",
				"symspellpy==6.7.7",
				"textstat==0.7.3",
				"proselint==0.13.0",
			},
		},
		Model: ModelStage{
			Name: "en_core_web_sm",
		},
		Corpora: CorporaStage{
			Names: []string{"wordnet", "omw-1.4", "words", "stopwords", "punkt"},
		},
		Capabilities: []string{"spacy", "wordnet", "symspell", "textstat", "proselint"},
	}

	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills unset fields so the rest of the system never has to
// second-guess empty values.
func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Settings.Python == "" {
		cfg.Settings.Python = "python3"
	}
	if cfg.Settings.Pip == "" {
		cfg.Settings.Pip = "pip3"
	}

	if cfg.Packages.Policy == "" {
		cfg.Packages.Policy = model.PolicyFatal
	}
	if cfg.Packages.Strategy == "" {
		cfg.Packages.Strategy = StrategyBatched
	}

	if cfg.Model.Policy == "" {
		cfg.Model.Policy = model.PolicyFatal
	}

	if cfg.Corpora.Policy == "" {
		cfg.Corpora.Policy = model.PolicyFatal
	}
	if cfg.Corpora.RegistryURL == "" {
		cfg.Corpora.RegistryURL = DefaultRegistryURL
	}
}
