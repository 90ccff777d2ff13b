package config

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	lexerrors "github.com/lexprep/lexprep/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	// PEP 508-ish requirement: name, optional extras, optional version pin.
	requirementPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(?:\[[A-Za-z0-9,._-]+\])?(?:(?:==|>=|<=|~=|!=|<|>)[0-9][0-9A-Za-z.*+!-]*)?$`)
	corpusPattern      = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
	modelPattern       = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	knownCapabilities = map[string]struct{}{
		"spacy":     {},
		"wordnet":   {},
		"symspell":  {},
		"textstat":  {},
		"proselint": {},
	}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("requirement", func(fl validator.FieldLevel) bool {
			return requirementPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("corpus_name", func(fl validator.FieldLevel) bool {
			return corpusPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("model_name", func(fl validator.FieldLevel) bool {
			return modelPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("capability", func(fl validator.FieldLevel) bool {
			_, ok := knownCapabilities[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// KnownCapabilities lists the capability names the verifier can probe, sorted.
func KnownCapabilities() []string {
	names := make([]string, 0, len(knownCapabilities))
	for name := range knownCapabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateConfig performs schema and cross-field validation on the plan.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return lexerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seenCorpora := make(map[string]struct{}, len(cfg.Corpora.Names))
	for i, name := range cfg.Corpora.Names {
		if _, dup := seenCorpora[name]; dup {
			return lexerrors.NewValidationError(fmt.Sprintf("corpora.names[%d]", i), fmt.Sprintf("duplicate corpus %q", name), nil)
		}
		seenCorpora[name] = struct{}{}
	}

	seenCaps := make(map[string]struct{}, len(cfg.Capabilities))
	for i, name := range cfg.Capabilities {
		if _, dup := seenCaps[name]; dup {
			return lexerrors.NewValidationError(fmt.Sprintf("capabilities[%d]", i), fmt.Sprintf("duplicate capability %q", name), nil)
		}
		seenCaps[name] = struct{}{}
	}

	return nil
}

func convertValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return lexerrors.NewValidationError("", err.Error(), err)
	}

	messages := make([]string, 0, len(fieldErrs))
	field := ""
	for _, fe := range fieldErrs {
		if field == "" {
			field = fe.Namespace()
		}
		messages = append(messages, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}

	return lexerrors.NewValidationError(field, strings.Join(messages, "; "), err)
}
