package capverify

import "fmt"

// sampleSentence feeds the inference and readability probes. Fixed so the
// readability score is reproducible across runs.
const sampleSentence = "The quick brown fox jumps over the lazy dog."

// Probe is one capability smoke test: a named interpreter one-liner whose
// stdout is the probe's metric value.
type Probe struct {
	Name   string
	Metric string
	Args   []string
}

// ProbeTable returns the full ordered probe set. Order is fixed; the
// verifier filters it down to the configured capabilities.
func ProbeTable(modelName string) []Probe {
	return []Probe{
		{
			Name:   "spacy",
			Metric: "tokens",
			Args: []string{"-c", fmt.Sprintf(
				"import spacy; nlp = spacy.load(%q); print(len(nlp(%q)))",
				modelName, sampleSentence)},
		},
		{
			Name:   "wordnet",
			Metric: "synsets",
			Args: []string{"-c",
				"from nltk.corpus import wordnet; print(len(wordnet.synsets('run')))"},
		},
		{
			Name:   "symspell",
			Metric: "import",
			Args: []string{"-c",
				"from symspellpy import SymSpell; print('ok')"},
		},
		{
			Name:   "textstat",
			Metric: "flesch",
			Args: []string{"-c", fmt.Sprintf(
				"import textstat; print(textstat.flesch_reading_ease(%q))",
				sampleSentence)},
		},
		{
			Name:   "proselint",
			Metric: "import",
			Args: []string{"-c",
				"from proselint.tools import lint; print('ok')"},
		},
	}
}
