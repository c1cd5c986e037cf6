package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeRows(t *testing.T, out string) []conformOutput {
	t.Helper()
	var rows []conformOutput
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var row conformOutput
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestConformCmd_ReplaysEdits(t *testing.T) {
	out, err := execute(t, "conform", "--pattern", "999-999", "--no-guide", "1", "12", "1234")
	if err != nil {
		t.Fatalf("conform: %v\n%s", err, out)
	}
	var got []string
	for _, row := range decodeRows(t, out) {
		got = append(got, row.Value)
	}
	if diff := cmp.Diff([]string{"1", "12", "123-4"}, got); diff != "" {
		t.Fatalf("edits mismatch (-want +got):\n%s", diff)
	}
}

func TestConformCmd_DatePipe(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want conformOutput
	}{
		{
			name: "shift",
			args: []string{"4"},
			want: conformOutput{Input: "4", Value: "04-__-____", PipedIndexes: []int{0}},
		},
		{
			name: "reject keeps previous",
			args: []string{"--previous", "1_-__-____", "--caret", "2", "13_-__-____"},
			want: conformOutput{Input: "13_-__-____", Value: "1_-__-____", Rejected: true},
		},
		{
			name: "complete",
			args: []string{"02282024"},
			want: conformOutput{Input: "02282024", Value: "02-28-2024", Complete: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"conform", "--preset", "date"}, tc.args...)...)
			if err != nil {
				t.Fatalf("conform: %v\n%s", err, out)
			}
			rows := decodeRows(t, out)
			if len(rows) != 1 {
				t.Fatalf("expected one row, got %d", len(rows))
			}
			got := rows[0]
			got.Caret = 0
			if len(got.PipedIndexes) == 0 {
				got.PipedIndexes = nil
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("row mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConformCmd_RequiresMask(t *testing.T) {
	if _, err := execute(t, "conform", "123"); err == nil {
		t.Fatal("expected error without --preset or --pattern")
	}
	if _, err := execute(t, "conform", "--preset", "missing", "123"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestPresetsCmd_OverlaysDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := "presets:\n  badge:\n    pattern: \"aa-9999\"\n"
	if err := os.WriteFile(filepath.Join(dir, "badge.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	out, err := execute(t, "--presets-dir", dir, "presets")
	if err != nil {
		t.Fatalf("presets: %v\n%s", err, out)
	}
	if !strings.Contains(out, "badge") || !strings.Contains(out, "__-____") {
		t.Fatalf("loaded preset missing:\n%s", out)
	}
	if !strings.Contains(out, "phone-us") {
		t.Fatalf("built-in preset missing:\n%s", out)
	}
}

func TestFieldsCmd_BindsMasks(t *testing.T) {
	out, err := execute(t, "fields", "--source", "../../pkg/openapi/testdata/contacts.yaml", "--operation", "createContact")
	if err != nil {
		t.Fatalf("fields: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"pattern": "(999) 999-9999"`) {
		t.Fatalf("expected phone mask binding:\n%s", out)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "version=dev") {
		t.Fatalf("unexpected output %q", out)
	}
}
