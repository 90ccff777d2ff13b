package pkginstall

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/model"
)

// stubPip writes a shell script that records its arguments and exits with
// the given status, returning the script path and the argument log path.
func stubPip(t *testing.T, exitCode int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := "#!/bin/sh\necho \"$@\" >> " + logPath + "\n"
	if exitCode != 0 {
		script += "echo 'No matching distribution found' >&2\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"

	pipPath := filepath.Join(dir, "pip")
	require.NoError(t, os.WriteFile(pipPath, []byte(script), 0o755))
	return pipPath, logPath
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestInstallBatchedIssuesSingleCall(t *testing.T) {
	pip, logPath := stubPip(t, 0)

	installer := New(config.PackagesStage{
		Policy:   model.PolicyFatal,
		Strategy: config.StrategyBatched,
		Items:    []string{"spacy==3.7.2", "nltk==3.8.1", "textstat==0.7.3"},
	}, pip, nil)

	outcome := installer.Run(context.Background())
	require.True(t, outcome.Success)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 1)
	require.Equal(t, "install spacy==3.7.2 nltk==3.8.1 textstat==0.7.3", calls[0])
}

func TestInstallPerItemIssuesOneCallEach(t *testing.T) {
	pip, logPath := stubPip(t, 0)

	installer := New(config.PackagesStage{
		Policy:   model.PolicyFatal,
		Strategy: config.StrategyPerItem,
		Items:    []string{"spacy==3.7.2", "nltk==3.8.1"},
	}, pip, nil)

	outcome := installer.Run(context.Background())
	require.True(t, outcome.Success)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 2)
	require.Equal(t, "install spacy==3.7.2", calls[0])
	require.Equal(t, "install nltk==3.8.1", calls[1])
}

func TestInstallFailureCapturesErrorStream(t *testing.T) {
	pip, _ := stubPip(t, 1)

	installer := New(config.PackagesStage{
		Policy:   model.PolicyFatal,
		Strategy: config.StrategyBatched,
		Items:    []string{"nosuchpkg==0.0.1"},
	}, pip, nil)

	outcome := installer.Run(context.Background())
	require.False(t, outcome.Success)
	require.Contains(t, outcome.Output, "No matching distribution found")
}

func TestInstallMissingManagerIsLaunchFailure(t *testing.T) {
	installer := New(config.PackagesStage{
		Policy:   model.PolicyFatal,
		Strategy: config.StrategyBatched,
		Items:    []string{"spacy==3.7.2"},
	}, filepath.Join(t.TempDir(), "missing-pip"), nil)

	outcome := installer.Run(context.Background())
	require.False(t, outcome.Success)
	require.Contains(t, outcome.Output, "could not run")
}

func TestRemediationListsEveryItem(t *testing.T) {
	t.Parallel()

	installer := New(config.PackagesStage{
		Items: []string{"spacy==3.7.2", "nltk==3.8.1"},
	}, "pip3", nil)

	require.Equal(t, "pip3 install spacy==3.7.2 nltk==3.8.1", installer.Remediation())
}
