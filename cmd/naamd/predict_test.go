package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"naamd/pkg/naam"
	"naamd/pkg/types"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []types.Prediction{
		{Name: "Shah Rukh Khan", PredLabel: "muslim", PredProbMuslim: 93},
		{Name: "Amitabh Bachchan", PredLabel: "not-muslim", PredProbMuslim: 12},
	})
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "name") || !strings.Contains(lines[0], "pred_prob_muslim") {
		t.Fatalf("bad header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Shah Rukh Khan") || !strings.Contains(lines[1], "93.0") {
		t.Fatalf("bad row: %q", lines[1])
	}
	if strings.Contains(lines[2], "  0  ") {
		t.Fatalf("no index column expected: %q", lines[2])
	}
}

func TestPredictRequiresInput(t *testing.T) {
	cmd := newPredictCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	var ue usageError
	if !errors.As(err, &ue) {
		t.Fatalf("missing --input must be a usage error, got %v", err)
	}
}

func TestPredictRejectsBadLanguageBeforeAnyIO(t *testing.T) {
	cmd := newPredictCmd()
	cmd.SetArgs([]string{"--input", "Test Name", "--lang", "fra"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	if !naam.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
