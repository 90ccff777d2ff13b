package tests

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/console"
	"github.com/lexprep/lexprep/internal/model"
	"github.com/lexprep/lexprep/internal/pipeline"
)

// writeStub creates an executable shell script standing in for pip or
// python.
func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func corpusRegistry(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/corpora/") && strings.HasSuffix(r.URL.Path, ".zip") {
			w.Write([]byte("archive"))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func planForTest(t *testing.T, registryURL string) (*config.Config, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "nltk_data")

	cfg := &config.Config{
		Version: "1.0",
		Name:    "integration-plan",
		Settings: config.Settings{
			Pip:    writeStub(t, dir, "pip", "exit 0\n"),
			Python: writeStub(t, dir, "python", "echo 10\nexit 0\n"),
		},
		Packages: config.PackagesStage{
			Policy:   model.PolicyFatal,
			Strategy: config.StrategyBatched,
			Items:    []string{"spacy==3.7.2", "nltk==3.8.1"},
		},
		Model: config.ModelStage{
			Policy: model.PolicyFatal,
			Name:   "en_core_web_sm",
		},
		Corpora: config.CorporaStage{
			Policy:      model.PolicyFatal,
			RegistryURL: registryURL,
			DataDir:     dataDir,
			Names:       []string{"wordnet", "stopwords"},
		},
		Capabilities: []string{"spacy", "wordnet"},
	}

	require.NoError(t, config.ValidateConfig(cfg))
	return cfg, dir
}

func TestFullPipelineSucceeds(t *testing.T) {
	registry := corpusRegistry(t)
	cfg, dir := planForTest(t, registry.URL)

	buf := &bytes.Buffer{}
	runner := pipeline.FromConfig(cfg, console.New(buf), nil)
	report := runner.Run(context.Background())

	require.True(t, report.OverallSuccess())
	require.Equal(t, 0, report.ExitCode())
	require.Len(t, report.Stages, 3)
	require.Len(t, report.Verifications, 2)
	require.Empty(t, report.FailedCapabilities())

	for _, name := range []string{"wordnet", "stopwords"} {
		_, err := os.Stat(filepath.Join(dir, "nltk_data", "corpora", name+".zip"))
		require.NoError(t, err)
	}

	out := buf.String()
	require.Contains(t, out, "INSTALLING PYTHON PACKAGES")
	require.Contains(t, out, "DOWNLOADING LANGUAGE MODEL")
	require.Contains(t, out, "DOWNLOADING LEXICAL CORPORA")
	require.Contains(t, out, "VERIFYING NLP CAPABILITIES")
	require.Contains(t, out, "[OK] provisioning complete")
	require.NotContains(t, out, "degraded")
}

func TestFullPipelineHaltsOnInstallerFailure(t *testing.T) {
	registry := corpusRegistry(t)
	cfg, dir := planForTest(t, registry.URL)
	cfg.Settings.Pip = writeStub(t, dir, "failing-pip", "echo 'resolution impossible' >&2\nexit 1\n")

	buf := &bytes.Buffer{}
	runner := pipeline.FromConfig(cfg, console.New(buf), nil)
	report := runner.Run(context.Background())

	require.False(t, report.OverallSuccess())
	require.Equal(t, 1, report.ExitCode())
	require.Len(t, report.Stages, 1)
	require.Empty(t, report.Verifications)

	// The model downloader and corpus fetcher never ran.
	_, err := os.Stat(filepath.Join(dir, "nltk_data"))
	require.True(t, os.IsNotExist(err))

	out := buf.String()
	require.Contains(t, out, "resolution impossible")
	require.Contains(t, out, "run manually:")
	require.NotContains(t, out, "DOWNLOADING LANGUAGE MODEL")
}

func TestFullPipelineReportsFailedCapabilitySoftly(t *testing.T) {
	registry := corpusRegistry(t)
	cfg, dir := planForTest(t, registry.URL)

	// python succeeds for the model download but fails any -c probe whose
	// snippet imports symspellpy.
	cfg.Settings.Python = writeStub(t, dir, "picky-python", `case "$*" in
*symspellpy*) echo "ModuleNotFoundError: No module named 'symspellpy'" >&2; exit 1 ;;
*) echo 10 ;;
esac
`)
	cfg.Capabilities = []string{"spacy", "symspell"}

	buf := &bytes.Buffer{}
	runner := pipeline.FromConfig(cfg, console.New(buf), nil)
	report := runner.Run(context.Background())

	require.True(t, report.OverallSuccess(), "verification failures stay soft")
	require.Equal(t, 0, report.ExitCode())
	require.Len(t, report.Verifications, 2)

	failed := report.FailedCapabilities()
	require.Len(t, failed, 1)
	require.Equal(t, "symspell", failed[0].Capability)

	out := buf.String()
	require.Contains(t, out, "symspell")
	require.Contains(t, out, "NLP capabilities may be degraded")
	require.Contains(t, out, "[OK] provisioning complete")
}
