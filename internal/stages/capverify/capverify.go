// Package capverify smoke-tests each provisioned NLP capability with one
// minimal interpreter invocation per capability.
package capverify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/model"
	lexerrors "github.com/lexprep/lexprep/pkg/errors"
)

// Verifier runs the configured probes in declaration order. Every probe is
// attempted regardless of earlier failures; a fault becomes a failed result,
// never a halt.
type Verifier struct {
	interpreter string
	probes      []Probe
	log         *logger.Logger
}

// New builds a Verifier for the named capabilities, preserving the fixed
// probe order. Unknown names are skipped; config validation rejects them
// before this point.
func New(python, modelName string, capabilities []string, log *logger.Logger) *Verifier {
	wanted := make(map[string]struct{}, len(capabilities))
	for _, name := range capabilities {
		wanted[name] = struct{}{}
	}

	var probes []Probe
	for _, p := range ProbeTable(modelName) {
		if _, ok := wanted[p.Name]; ok {
			probes = append(probes, p)
		}
	}

	return &Verifier{interpreter: python, probes: probes, log: log}
}

// Verify runs every probe and returns one result per probe, in order.
func (v *Verifier) Verify(ctx context.Context) []model.VerificationResult {
	results := make([]model.VerificationResult, 0, len(v.probes))

	for _, probe := range v.probes {
		v.log.WithFields(map[string]any{"capability": probe.Name}).Debug("running capability probe")
		results = append(results, v.runProbe(ctx, probe))
	}

	return results
}

func (v *Verifier) runProbe(ctx context.Context, probe Probe) model.VerificationResult {
	cmd := exec.CommandContext(ctx, v.interpreter, probe.Args...)
	cmd.Env = os.Environ()

	out, err := cmd.CombinedOutput()
	detail := strings.TrimSpace(string(out))

	if err != nil {
		fault := err
		if detail != "" {
			fault = fmt.Errorf("%w: %s", err, lastLine(detail))
		}
		capErr := lexerrors.NewCapabilityError(probe.Name, fault)
		v.log.Error(capErr, "capability probe failed")
		return model.VerificationResult{
			Capability: probe.Name,
			Detail:     detail,
			Err:        capErr,
		}
	}

	if detail == "" {
		capErr := lexerrors.NewCapabilityError(probe.Name, fmt.Errorf("probe produced no output"))
		return model.VerificationResult{Capability: probe.Name, Err: capErr}
	}

	return model.VerificationResult{
		Capability: probe.Name,
		Passed:     true,
		Detail:     fmt.Sprintf("%s=%s", probe.Metric, lastLine(detail)),
	}
}

// lastLine trims a multi-line diagnostic down to its final line, which for
// interpreter tracebacks is the actual error message.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
