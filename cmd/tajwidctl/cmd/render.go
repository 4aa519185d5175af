package cmd

import (
	"fmt"
	"io"
	"os"

	"tajwid-pintar-be/internal/config"
	"tajwid-pintar-be/pkg/directive"
	"tajwid-pintar-be/pkg/knowledge"
	"tajwid-pintar-be/pkg/prompt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	renderFile    string
	renderRecords string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a generated reply against a record list, offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := os.ReadFile(renderFile)
		if err != nil {
			return err
		}

		var records []knowledge.Record
		if renderRecords != "" {
			raw, err := os.ReadFile(renderRecords)
			if err != nil {
				return err
			}
			if err := yaml.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("decode records: %w", err)
			}
		}

		cfg := config.Load()
		renderer := directive.NewRenderer(
			directive.WithReciterBaseURL(cfg.Chat.ReciterBaseURL),
			directive.WithRegistrationURL(cfg.Chat.RegistrationURL),
		)
		snap := knowledge.NewSnapshot(records)
		plan := renderer.Render(string(reply), snap)

		printPlan(cmd.OutOrStdout(), plan)
		if leaks := prompt.LeakedPhrases(plan.PlainText(), snap.IDs()); len(leaks) > 0 {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "leaked: %v\n", leaks)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "", "file holding the raw reply")
	renderCmd.Flags().StringVar(&renderRecords, "records", "", "YAML list of knowledge records")
	_ = renderCmd.MarkFlagRequired("file")
}

func printPlan(w io.Writer, plan directive.Plan) {
	bold := color.New(color.Bold)
	for _, it := range plan.Items {
		switch it.Kind {
		case directive.ItemText:
			fmt.Fprint(w, it.Text)
		case directive.ItemBold:
			bold.Fprint(w, it.Text)
		case directive.ItemAudio:
			color.New(color.FgGreen).Fprintf(w, "\n[%s: %s] %s\n", it.Label, it.Text, it.URL)
		case directive.ItemAudioUnavailable:
			color.New(color.FgYellow).Fprintf(w, "\n%s\n", it.Text)
		case directive.ItemRecitation:
			color.New(color.FgCyan).Fprintf(w, "\n[%s %d:%d] %s\n", it.Label, it.Chapter, it.Verse, it.URL)
		case directive.ItemRegistrationCTA:
			color.New(color.FgMagenta).Fprintf(w, "\n%s\n[%s] %s\n", it.Text, it.Label, it.URL)
		}
	}
	fmt.Fprintln(w)
}
