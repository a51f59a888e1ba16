package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/catering.space/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself.
func TestExitfExitsWithCode1(t *testing.T) {
	if os.Getenv("CATERING_SPACE_EXITF_SUBPROCESS") == "1" {
		config.Exitf("invalid pricing config: %s", "kitchen staff table is empty")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCode1$")
	cmd.Env = append(os.Environ(), "CATERING_SPACE_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	want := "invalid pricing config: kitchen staff table is empty"
	if !strings.Contains(string(out), want) {
		t.Fatalf("stderr = %q, want it to contain %q", string(out), want)
	}
}
