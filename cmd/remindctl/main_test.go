package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
)

const testWorkspace = `timezone: America/Toronto
default_channel_ids: [CGEN, CPROP]
channels:
  general: CGEN
  propulsion: CPROP
`

func writeWorkspace(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "workspace.yaml")
	if err := os.WriteFile(path, []byte(testWorkspace), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewMessageOnly(t *testing.T) {
	out, err := execute(t, "",
		"preview",
		"--summary", "Sync",
		"--description", "other\ncopy\n#general",
		"--start", "2026-10-17T18:02:00Z",
		"--now", "2026-10-17T18:00:00Z",
		"--workspace", writeWorkspace(t),
		"--message-only",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Reminder: *Sync* is occurring in *2 minutes*\nReact with :wave: if you're coming!\n"
	if out != want {
		t.Errorf("output =\n%q\nwant\n%q", out, want)
	}
}

func TestPreviewResolvesChannelsFromWorkspace(t *testing.T) {
	out, err := execute(t, "meeting\nalert-single-channel\n#propulsion\n#general",
		"preview",
		"--summary", "Sync",
		"--description-file", "-",
		"--start", "2026-10-17T18:01:00Z",
		"--now", "2026-10-17T18:00:00Z",
		"--workspace", writeWorkspace(t),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result reminder.PreviewResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}

	if !result.RequiresLookup {
		t.Error("expected RequiresLookup")
	}
	if result.Outcome != domain.OutcomeSent {
		t.Errorf("Outcome = %s, want %s", result.Outcome, domain.OutcomeSent)
	}
	if result.Config == nil || result.Config.MainChannel != domain.ChannelID("CPROP") {
		t.Errorf("unexpected config %+v", result.Config)
	}
}

func TestPreviewReportsMalformedDescription(t *testing.T) {
	out, err := execute(t, "",
		"preview",
		"--summary", "Sync",
		"--description", "party\ncopy\n#general",
		"--start", "2026-10-17T18:02:00Z",
		"--now", "2026-10-17T18:00:00Z",
		"--workspace", writeWorkspace(t),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result reminder.PreviewResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if result.Outcome != domain.OutcomeFailed {
		t.Errorf("Outcome = %s, want %s", result.Outcome, domain.OutcomeFailed)
	}
	if result.Diagnostic == "" {
		t.Error("expected diagnostic")
	}
}

func TestPreviewErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing start",
			args: []string{"preview", "--summary", "Sync"},
		},
		{
			name: "bad start",
			args: []string{"preview", "--summary", "Sync", "--start", "tomorrow"},
		},
		{
			name: "unknown verdict",
			args: []string{"preview", "--summary", "Sync", "--start", "2026-10-17T18:02:00Z", "--verdict", "later"},
		},
		{
			name: "near not below far",
			args: []string{"preview", "--summary", "Sync", "--start", "2026-10-17T18:02:00Z", "--near", "2h", "--far", "1h"},
		},
		{
			name: "missing workspace file",
			args: []string{"preview", "--summary", "Sync", "--start", "2026-10-17T18:02:00Z", "--workspace", "/nonexistent/workspace.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  domain.Verdict
	}{
		{name: "starting soon", start: "2026-10-17T18:03:00Z", want: domain.VerdictSoon},
		{name: "advance notice", start: "2026-10-18T00:02:00Z", want: domain.VerdictAdvance},
		{name: "between windows", start: "2026-10-17T20:00:00Z", want: domain.VerdictSkip},
		{name: "already started", start: "2026-10-17T17:59:00Z", want: domain.VerdictSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", "classify", "--start", tt.start, "--now", "2026-10-17T18:00:00Z")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != string(tt.want) {
				t.Errorf("verdict = %q, want %q", got, tt.want)
			}
		})
	}
}
