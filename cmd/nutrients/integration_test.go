// ABOUTME: Integration test for the nutrients binary.
// ABOUTME: Builds the CLI and drives a full log, status, nudge, export workflow.
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binary := filepath.Join(tmpDir, "nutrients")

	buildCmd := exec.Command("go", "build", "-o", binary, ".")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	env := append(os.Environ(),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"NUTRIENTS_BACKEND=",
		"NUTRIENTS_SEX=",
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("food", "add", "Steak", "--calories", "600", "--protein", "56", "--fat", "30", "--meal", "dinner")
	if err != nil {
		t.Fatalf("Failed to log food: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged Steak") {
		t.Errorf("Expected 'Logged Steak' in output, got: %s", output)
	}

	output, err = run("burn", "add", "sleep_hours", "5")
	if err != nil {
		t.Fatalf("Failed to record sleep: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recorded sleep_hours") {
		t.Errorf("Expected 'Recorded sleep_hours' in output, got: %s", output)
	}

	output, err = run("status", "--all")
	if err != nil {
		t.Fatalf("Failed to show status: %v\n%s", err, output)
	}
	for _, want := range []string{"Protein", "Optimal", "Riboflavin", "Critical"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in status output, got: %s", want, output)
		}
	}

	output, err = run("nudge")
	if err != nil {
		t.Fatalf("Failed to nudge: %v\n%s", err, output)
	}
	if !strings.Contains(output, "predicted at") {
		t.Errorf("Expected a nudge, got: %s", output)
	}

	output, err = run("export", "markdown")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Steak") {
		t.Errorf("Expected Steak in export, got: %s", output)
	}
}
