// Package corpusfetch populates a local corpus cache by downloading packaged
// corpora from a remote registry over HTTPS.
package corpusfetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/model"
	lexerrors "github.com/lexprep/lexprep/pkg/errors"
)

const stageName = "corpora"

// Fetcher downloads each named corpus archive into the data directory.
// Corpus readers consume the zip archives in place, so extraction is not
// needed.
type Fetcher struct {
	client      *http.Client
	registryURL string
	dataDir     string
	policy      model.StagePolicy
	names       []string
	log         *logger.Logger
}

// New creates a Fetcher from the corpora stage configuration. When
// InsecureTLS is set, certificate verification is relaxed once, on this
// fetcher's own transport; if the default transport cannot be adjusted the
// fetcher keeps the stock client rather than failing.
func New(stage config.CorporaStage, log *logger.Logger) *Fetcher {
	client := &http.Client{}
	if stage.InsecureTLS {
		if base, ok := http.DefaultTransport.(*http.Transport); ok {
			transport := base.Clone()
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
			client.Transport = transport
			log.Warn("certificate verification disabled for corpus downloads")
		} else {
			log.Warn("transport does not support relaxed certificate verification; continuing with defaults")
		}
	}

	return &Fetcher{
		client:      client,
		registryURL: stage.RegistryURL,
		dataDir:     stage.DataDir,
		policy:      stage.Policy,
		names:       append([]string(nil), stage.Names...),
		log:         log,
	}
}

// Name identifies the stage in reports.
func (f *Fetcher) Name() string { return stageName }

// Title is the banner shown while the stage runs.
func (f *Fetcher) Title() string { return "Downloading lexical corpora" }

// Policy returns the stage's fatality class.
func (f *Fetcher) Policy() model.StagePolicy { return f.policy }

// Remediation is the equivalent manual command an operator can run.
func (f *Fetcher) Remediation() string {
	return fmt.Sprintf("python3 -m nltk.downloader %s", strings.Join(f.names, " "))
}

// Run downloads every corpus in order. The stage fails on the first
// unrecoverable fault; individual items are not reported separately.
func (f *Fetcher) Run(ctx context.Context) model.ExecutionOutcome {
	dir, err := f.cacheDir()
	if err != nil {
		failure := lexerrors.NewLaunchError(stageName, err)
		f.log.Error(failure, "corpus cache unavailable")
		return model.ExecutionOutcome{Output: failure.Error()}
	}

	for _, name := range f.names {
		f.log.WithFields(map[string]any{"stage": stageName, "corpus": name}).Info("downloading corpus")

		if err := f.download(ctx, name, dir); err != nil {
			failure := lexerrors.NewLaunchError(stageName, err)
			f.log.Error(failure, "corpus download failed")
			return model.ExecutionOutcome{Output: failure.Error()}
		}
	}

	return model.ExecutionOutcome{
		Success: true,
		Output:  fmt.Sprintf("%d corpora cached under %s", len(f.names), dir),
	}
}

func (f *Fetcher) cacheDir() (string, error) {
	dir := f.dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, "nltk_data")
	}

	dir = filepath.Join(dir, "corpora")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (f *Fetcher) download(ctx context.Context, name, dir string) error {
	url := fmt.Sprintf("%s/corpora/%s.zip", f.registryURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("corpus %s: %w", name, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("corpus %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("corpus %s: registry returned %s", name, resp.Status)
	}

	dest := filepath.Join(dir, name+".zip")
	tmp, err := os.CreateTemp(dir, name+"-*.partial")
	if err != nil {
		return fmt.Errorf("corpus %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("corpus %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("corpus %s: %w", name, err)
	}

	return os.Rename(tmp.Name(), dest)
}
