package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/scheduler"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newHistoryCmd(app *App) *cobra.Command {
	var days int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize journaled activity per module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.History.Summary(context.Background(), days)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(summary))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days, including today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

// Report is the parent-facing export document.
type Report struct {
	GeneratedAt    string                                   `json:"generated_at"`
	Stats          progress.Stats                           `json:"stats"`
	Plan           progress.PlanView                        `json:"daily_plan"`
	Challenges     progress.ChallengeView                   `json:"challenges"`
	Reviews        scheduler.Stats                          `json:"reviews"`
	WrongQuestions map[domain.Module][]domain.WrongQuestion `json:"wrong_questions"`
	Mastered       map[string][]string                      `json:"mastered_items"`
	Parent         domain.ParentSettings                    `json:"parent_settings"`
	History        *service.HistorySummary                  `json:"history,omitempty"`
}

func buildReport(ctx context.Context, app *App, days int) Report {
	r := Report{
		GeneratedAt:    app.Store.Now().Format(time.RFC3339),
		Stats:          app.Store.GetStats(),
		Plan:           app.Store.GetDailyPlan(),
		Challenges:     app.Store.GetDailyChallenges(),
		Reviews:        app.Store.ReviewStats(),
		WrongQuestions: app.Store.WrongQuestions(""),
		Mastered:       app.Store.MasteredItems(""),
		Parent:         app.Store.ParentSettings(),
	}
	r.Parent.PasswordHash, r.Parent.Password = "", ""
	if app.History != nil {
		if h, err := app.History.Summary(ctx, days); err == nil {
			r.History = h
		}
	}
	return r
}

func newExportCmd(app *App) *cobra.Command {
	var format, output string
	var days int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a progress report as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := buildReport(context.Background(), app, days)

			var data []byte
			var err error
			switch strings.ToLower(format) {
			case "json":
				data, err = json.MarshalIndent(report, "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = toYAML(report)
			default:
				return fmt.Errorf("unknown format %q (expected json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().IntVar(&days, "days", 30, "Days of journal history to include")
	return cmd
}

// toYAML renders v as block-style YAML with the same keys and order as its
// JSON encoding.
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	plainStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}
