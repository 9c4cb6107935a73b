package reminder

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name        string
		event       domain.Event
		verdict     domain.Verdict
		setup       func(m *mocks)
		wantOutcome domain.Outcome
		wantMessage string
		wantDiag    string
	}{
		{
			name:    "classified soon",
			event:   testutil.NewEvent("e1", "Sync", "other\ncopy\n#general", now.Add(90*time.Second)),
			verdict: "",
			setup: func(m *mocks) {
				m.emoji.EXPECT().RandomEmoji(gomock.Any()).Return(":wave:", nil)
			},
			wantOutcome: domain.OutcomeSent,
			wantMessage: "Reminder: *Sync* is occurring in *2 minutes*\nReact with :wave: if you're coming!",
		},
		{
			name:        "outside windows",
			event:       testutil.NewEvent("e2", "Sync", "other\ncopy\n#general", now.Add(2*time.Hour)),
			setup:       func(m *mocks) {},
			wantOutcome: domain.OutcomeNotYetActionable,
		},
		{
			name:    "forced advance",
			event:   testutil.NewEvent("e3", "Sync", "test\ncopy\n#general", now.Add(2*time.Hour)),
			verdict: domain.VerdictAdvance,
			setup: func(m *mocks) {
				m.emoji.EXPECT().RandomEmoji(gomock.Any()).Return(":wave:", nil)
			},
			wantOutcome: domain.OutcomeSent,
			wantMessage: "Reminder: *Sync* is occurring on *March 3rd, 2025 at 9:00 PM*" +
				"\nToday's test is located at: <insert funny location here>" +
				"\nReact with :wave: if you're coming!",
		},
		{
			name:        "suppressed",
			event:       testutil.NewEvent("e4", "Sync", "none", now.Add(time.Minute)),
			setup:       func(m *mocks) {},
			wantOutcome: domain.OutcomeSuppressed,
		},
		{
			name:        "malformed",
			event:       testutil.NewEvent("e5", "Sync", "meeting\nloud\n#general", now.Add(time.Minute)),
			setup:       func(m *mocks) {},
			wantOutcome: domain.OutcomeFailed,
			wantDiag:    "Upcoming *Sync* contains a malformed alert type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, Config{})
			tt.setup(m)

			got, err := svc.Preview(context.Background(), tt.event, now, tt.verdict)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %s, want %s", got.Outcome, tt.wantOutcome)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message =\n%q\nwant\n%q", got.Message, tt.wantMessage)
			}
			if got.Diagnostic != tt.wantDiag {
				t.Errorf("Diagnostic = %q, want %q", got.Diagnostic, tt.wantDiag)
			}
		})
	}
}

func TestPreview_UsesDirectoryWhenRequired(t *testing.T) {
	svc, m := newTestService(t, Config{})
	m.directory.EXPECT().Lookup(gomock.Any()).Return(testutil.DevChannelLookup(), nil)

	event := testutil.NewEvent("e6", "Sync", "meeting\nalert-single-channel\n#propulsion\n#general", now.Add(time.Minute))

	got, err := svc.Preview(context.Background(), event, now, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.RequiresLookup {
		t.Errorf("expected RequiresLookup")
	}
	if got.Config.MainChannel != domain.ChannelID("C0155MHAHB4") {
		t.Errorf("MainChannel = %+v", got.Config.MainChannel)
	}
	if !strings.Contains(got.Message, "Ways to attend:") {
		t.Errorf("expected attendance block in %q", got.Message)
	}
}
