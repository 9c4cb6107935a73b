package description

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestParser_ParseSingleChannelDefault(t *testing.T) {
	parser := NewParser()
	lookup := testutil.DevChannelLookup()

	cfg, err := parser.Parse("Weekly", testutil.Ptr("meeting\nalert-single-channel\n#general\ndefault\n\nN/A"), lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MainChannel != domain.ChannelID("C014J93U4JZ") {
		t.Errorf("MainChannel = %+v, want id C014J93U4JZ", cfg.MainChannel)
	}

	want := slices.DeleteFunc(slices.Clone(testutil.DevDefaultChannelIDs), func(id string) bool {
		return id == "C014J93U4JZ"
	})
	if got := domain.ChannelValues(cfg.AdditionalChannels); !reflect.DeepEqual(got, want) {
		t.Errorf("AdditionalChannels = %v, want %v", got, want)
	}
	for _, c := range cfg.AdditionalChannels {
		if !c.IsID() {
			t.Errorf("expected default channel %s to be an id", c.Value)
		}
	}

	if len(cfg.AgendaItems) != 0 {
		t.Errorf("AgendaItems = %v, want empty", cfg.AgendaItems)
	}
	if cfg.Notes != "N/A" {
		t.Errorf("Notes = %q, want N/A", cfg.Notes)
	}
	if cfg.Type != domain.EventTypeMeeting || cfg.AlertType != domain.AlertTypeAlertSingleChannel {
		t.Errorf("unexpected types: %s / %s", cfg.Type, cfg.AlertType)
	}
}

func TestParser_ParseAgenda(t *testing.T) {
	parser := NewParser()

	cfg, err := parser.Parse("Weekly", testutil.Ptr("meeting\nalert-single-channel\n#general\ndefault\nitem,item1,item2\nN/A"), testutil.DevChannelLookup())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"item", "item1", "item2"}
	if !reflect.DeepEqual(cfg.AgendaItems, want) {
		t.Errorf("AgendaItems = %v, want %v", cfg.AgendaItems, want)
	}
}

func TestParser_ParseNamesWithoutLookup(t *testing.T) {
	parser := NewParser()

	cfg, err := parser.Parse("Static fire", testutil.Ptr("test\nalert-main-channel\n#general\n#test #rest #lest\nitem,item1,item2\nN/A"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MainChannel != domain.ChannelName("general") {
		t.Errorf("MainChannel = %+v, want name general", cfg.MainChannel)
	}

	want := []domain.Channel{
		domain.ChannelName("test"),
		domain.ChannelName("rest"),
		domain.ChannelName("lest"),
	}
	if !reflect.DeepEqual(cfg.AdditionalChannels, want) {
		t.Errorf("AdditionalChannels = %v, want %v", cfg.AdditionalChannels, want)
	}
}

func TestParser_ParseAdditionalChannels(t *testing.T) {
	parser := NewParser()
	lookup := testutil.DevChannelLookup()

	tests := []struct {
		name        string
		description string
		lookup      domain.ChannelLookup
		wantMain    domain.Channel
		want        []domain.Channel
	}{
		{
			name:        "absent line yields none",
			description: "other\ncopy\n#general",
			wantMain:    domain.ChannelName("general"),
			want:        []domain.Channel{},
		},
		{
			name:        "whitespace runs and nbsp collapse",
			description: "other\ncopy\n#general\n#a \t #b\u00a0#c",
			wantMain:    domain.ChannelName("general"),
			want:        []domain.Channel{domain.ChannelName("a"), domain.ChannelName("b"), domain.ChannelName("c")},
		},
		{
			name:        "main channel removed from names",
			description: "other\nalert\ngeneral\n#random #general",
			wantMain:    domain.ChannelName("general"),
			want:        []domain.Channel{domain.ChannelName("random")},
		},
		{
			name:        "single channel translates known names only",
			description: "meeting\nalert-single-channel\n#propulsion\n#general #unknown #propulsion",
			lookup:      lookup,
			wantMain:    domain.ChannelID("C0155MHAHB4"),
			want:        []domain.Channel{domain.ChannelID("C014J93U4JZ"), domain.ChannelName("unknown")},
		},
		{
			name:        "default keyword translates main only",
			description: "meeting\ncopy\n #random \n default ",
			lookup:      domain.NewChannelMap(map[string]string{"random": "C9"}, []string{"C1", "C9", "C2"}),
			wantMain:    domain.ChannelID("C9"),
			want:        []domain.Channel{domain.ChannelID("C1"), domain.ChannelID("C2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse("Event", testutil.Ptr(tt.description), tt.lookup)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.MainChannel != tt.wantMain {
				t.Errorf("MainChannel = %+v, want %+v", cfg.MainChannel, tt.wantMain)
			}
			if !reflect.DeepEqual(cfg.AdditionalChannels, tt.want) {
				t.Errorf("AdditionalChannels = %v, want %v", cfg.AdditionalChannels, tt.want)
			}
		})
	}
}

func TestParser_ParseAgendaAndNotes(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name        string
		description string
		wantAgenda  []string
		wantNotes   string
	}{
		{
			name:        "items trimmed",
			description: "meeting\ncopy\ngeneral\n\n  budget ,  design review,hiring  ",
			wantAgenda:  []string{"budget", "design review", "hiring"},
		},
		{
			name:        "whitespace agenda keeps one empty item",
			description: "meeting\ncopy\ngeneral\n\n   \nbring snacks",
			wantAgenda:  []string{""},
			wantNotes:   "bring snacks",
		},
		{
			name:        "empty agenda line",
			description: "meeting\ncopy\ngeneral\n\n\nbring snacks",
			wantAgenda:  []string{},
			wantNotes:   "bring snacks",
		},
		{
			name:        "empty item between commas",
			description: "meeting\ncopy\ngeneral\n\nitem,,item2",
			wantAgenda:  []string{"item", "", "item2"},
		},
		{
			name:        "trailing comma",
			description: "meeting\ncopy\ngeneral\n\na,b,",
			wantAgenda:  []string{"a", "b", ""},
		},
		{
			name:        "notes verbatim",
			description: "meeting\ncopy\ngeneral\n\n\n  spaced notes  ",
			wantAgenda:  []string{},
			wantNotes:   "  spaced notes  ",
		},
		{
			name:        "lines past notes ignored",
			description: "meeting\ncopy\ngeneral\n\nitem\nnotes\nextra\nmore",
			wantAgenda:  []string{"item"},
			wantNotes:   "notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse("Event", testutil.Ptr(tt.description), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg.AgendaItems, tt.wantAgenda) {
				t.Errorf("AgendaItems = %q, want %q", cfg.AgendaItems, tt.wantAgenda)
			}
			if cfg.Notes != tt.wantNotes {
				t.Errorf("Notes = %q, want %q", cfg.Notes, tt.wantNotes)
			}
		})
	}
}

func TestParser_ParseErrors(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name        string
		description *string
		lookup      domain.ChannelLookup
		wantErr     error
		wantField   domain.DescriptionField
	}{
		{
			name:        "missing description",
			description: nil,
			wantErr:     domain.ErrMissingDescription,
		},
		{
			name:        "none suppresses",
			description: testutil.Ptr("none\nalert\ngeneral"),
			wantErr:     domain.ErrSuppressed,
		},
		{
			name:        "none alone suppresses",
			description: testutil.Ptr("none"),
			wantErr:     domain.ErrSuppressed,
		},
		{
			name:        "none before garbage suppresses",
			description: testutil.Ptr(" none \nnot-an-alert"),
			wantErr:     domain.ErrSuppressed,
		},
		{
			name:        "unknown event type",
			description: testutil.Ptr("party\nalert\ngeneral"),
			wantField:   domain.FieldEventType,
		},
		{
			name:        "empty description",
			description: testutil.Ptr(""),
			wantField:   domain.FieldEventType,
		},
		{
			name:        "missing alert type",
			description: testutil.Ptr("meeting"),
			wantField:   domain.FieldAlertType,
		},
		{
			name:        "unknown alert type",
			description: testutil.Ptr("meeting\nshout\ngeneral"),
			wantField:   domain.FieldAlertType,
		},
		{
			name:        "missing main channel",
			description: testutil.Ptr("meeting\nalert"),
			wantField:   domain.FieldMainChannel,
		},
		{
			name:        "blank main channel",
			description: testutil.Ptr("meeting\nalert\n  # "),
			wantField:   domain.FieldMainChannel,
		},
		{
			name:        "unknown main channel when translating",
			description: testutil.Ptr("meeting\nalert-single-channel\n#nowhere"),
			lookup:      testutil.DevChannelLookup(),
			wantField:   domain.FieldMainChannel,
		},
		{
			name:        "single channel without lookup",
			description: testutil.Ptr("meeting\nalert-single-channel\n#general"),
			wantErr:     domain.ErrLookupRequired,
		},
		{
			name:        "default channels without lookup",
			description: testutil.Ptr("meeting\nalert\n#general\ndefault"),
			wantErr:     domain.ErrLookupRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse("Launch review", tt.description, tt.lookup)
			if err == nil {
				t.Fatalf("expected error, got config %+v", cfg)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			var malformed *domain.MalformedDescriptionError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedDescriptionError, got %T: %v", err, err)
			}
			if malformed.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", malformed.Field, tt.wantField)
			}
			if malformed.Summary != "Launch review" {
				t.Errorf("Summary = %q, want Launch review", malformed.Summary)
			}
		})
	}
}

func TestParser_ParseIdempotent(t *testing.T) {
	parser := NewParser()
	lookup := testutil.DevChannelLookup()
	description := testutil.Ptr("meeting\nalert-single-channel\n#general\ndefault\na, b\nnotes")

	first, err := parser.Parse("Weekly", description, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parser.Parse("Weekly", description, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse is not idempotent:\n%+v\n%+v", first, second)
	}

	// The default list held by the lookup must not be mutated by parsing.
	if got := lookup.DefaultChannelIDs(); !reflect.DeepEqual(got, testutil.DevDefaultChannelIDs) {
		t.Errorf("lookup defaults mutated: %v", got)
	}
}

func TestRequiresChannelLookup(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{name: "single channel", description: "meeting\nalert-single-channel\ngeneral", want: true},
		{name: "single channel padded", description: "meeting\n alert-single-channel \ngeneral", want: true},
		{name: "default additional", description: "meeting\nalert\ngeneral\ndefault", want: true},
		{name: "main channel named default", description: "meeting\nalert\ndefault\n#a", want: false},
		{name: "plain names", description: "test\nalert-main-channel\ngeneral\n#a #b", want: false},
		{name: "short", description: "meeting", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresChannelLookup(tt.description); got != tt.want {
				t.Errorf("RequiresChannelLookup() = %v, want %v", got, tt.want)
			}
		})
	}
}
