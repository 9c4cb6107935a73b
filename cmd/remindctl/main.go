// Command remindctl previews event reminders offline. Channels resolve
// through the static map in the workspace file, so no Slack token is needed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/compose"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/description"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/timing"
)

const defaultPreviewEmoji = ":wave:"

// staticEmoji always returns the same emoji.
type staticEmoji string

func (e staticEmoji) RandomEmoji(_ context.Context) (string, error) {
	return string(e), nil
}

type previewOptions struct {
	summary         string
	description     string
	descriptionFile string
	location        string
	start           string
	now             string
	verdict         string
	workspacePath   string
	emoji           string
	nearWindow      time.Duration
	farWindow       time.Duration
	messageOnly     bool
}

type classifyOptions struct {
	start      string
	now        string
	nearWindow time.Duration
	farWindow  time.Duration
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "remindctl",
		Short:        "remindctl - preview calendar event reminders",
		SilenceUsage: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)

	root.AddCommand(newPreviewCmd(), newClassifyCmd())
	return root
}

func newPreviewCmd() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the reminder a check run would send for an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.summary, "summary", "s", "", "Event summary")
	f.StringVarP(&opts.description, "description", "d", "", "Event description")
	f.StringVarP(&opts.descriptionFile, "description-file", "f", "", "Read the description from a file, - for stdin")
	f.StringVarP(&opts.location, "location", "l", "", "Event location")
	f.StringVar(&opts.start, "start", "", "Event start, RFC3339")
	f.StringVar(&opts.now, "now", "", "Evaluate at this instant instead of the current time, RFC3339")
	f.StringVar(&opts.verdict, "verdict", "", "Force a verdict: soon, advance or skip")
	f.StringVarP(&opts.workspacePath, "workspace", "w", os.Getenv("WORKSPACE_CONFIG_PATH"), "Workspace YAML file")
	f.StringVar(&opts.emoji, "emoji", defaultPreviewEmoji, "Emoji used in attendance prompts")
	f.DurationVar(&opts.nearWindow, "near", config.DefaultNearWindow, "Near window")
	f.DurationVar(&opts.farWindow, "far", config.DefaultFarWindow, "Far window")
	f.BoolVar(&opts.messageOnly, "message-only", false, "Print only the rendered message")

	_ = cmd.MarkFlagRequired("summary")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("description", "description-file")

	return cmd
}

func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Print the timing verdict for an event start",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.start, "start", "", "Event start, RFC3339")
	f.StringVar(&opts.now, "now", "", "Evaluate at this instant instead of the current time, RFC3339")
	f.DurationVar(&opts.nearWindow, "near", config.DefaultNearWindow, "Near window")
	f.DurationVar(&opts.farWindow, "far", config.DefaultFarWindow, "Far window")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func runPreview(cmd *cobra.Command, opts *previewOptions) error {
	start, now, err := parseInstants(opts.start, opts.now)
	if err != nil {
		return err
	}

	verdict := domain.Verdict(opts.verdict)
	if verdict != "" && verdict != domain.VerdictSkip && !verdict.IsActionable() {
		return fmt.Errorf("unknown verdict %q", opts.verdict)
	}

	timingCfg := &config.TimingConfig{Near: opts.nearWindow, Far: opts.farWindow}
	if err := timingCfg.Validate(); err != nil {
		return err
	}

	workspace, err := config.LoadWorkspaceConfig(opts.workspacePath)
	if err != nil {
		return err
	}
	if err := workspace.Validate(); err != nil {
		return err
	}

	event := domain.Event{
		ID:      "preview",
		Summary: opts.summary,
		Start:   start,
	}

	switch {
	case opts.descriptionFile != "":
		text, err := readDescription(cmd.InOrStdin(), opts.descriptionFile)
		if err != nil {
			return err
		}
		event.Description = &text
	case cmd.Flags().Changed("description"):
		text := opts.description
		event.Description = &text
	}

	if opts.location != "" {
		location := opts.location
		event.Location = &location
	}

	directory := domain.NewStaticDirectory(domain.NewChannelMap(workspace.Channels, workspace.DefaultChannelIDs))

	svc := reminder.NewService(
		nil,
		directory,
		nil,
		nil,
		nil,
		timing.NewClassifierFromConfig(timingCfg),
		description.NewParser(),
		compose.NewComposer(staticEmoji(opts.emoji), workspace),
		nil,
		reminder.Config{},
	)

	result, err := svc.Preview(cmd.Context(), event, now, verdict)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.messageOnly {
		if result.Message == "" {
			_, err := fmt.Fprintf(out, "(nothing sent: %s)\n", result.Outcome)
			return err
		}
		_, err := fmt.Fprintln(out, result.Message)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runClassify(cmd *cobra.Command, opts *classifyOptions) error {
	start, now, err := parseInstants(opts.start, opts.now)
	if err != nil {
		return err
	}

	timingCfg := &config.TimingConfig{Near: opts.nearWindow, Far: opts.farWindow}
	if err := timingCfg.Validate(); err != nil {
		return err
	}

	verdict := timing.NewClassifierFromConfig(timingCfg).Classify(start.Sub(now))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), verdict)
	return err
}

func parseInstants(startRaw, nowRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start %q: expected RFC3339", startRaw)
	}

	now := time.Now()
	if nowRaw != "" {
		now, err = time.Parse(time.RFC3339, nowRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid now %q: expected RFC3339", nowRaw)
		}
	}

	return start, now, nil
}

func readDescription(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return string(data), nil
}
