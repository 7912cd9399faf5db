package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate an AI summary of the financial position",
	Long: `Build the report for a period and ask the configured model
(SUMMARY_PROVIDER) for a short narrative, rendered as Markdown.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addPeriodFlags(summaryCmd)
	addSnapshotFlag(summaryCmd)
	summaryCmd.Flags().Bool("raw", false, "Print Markdown without terminal rendering")
	summaryCmd.Flags().Bool("prompt-only", false, "Print the prompt instead of calling the model")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("summary", 5*time.Minute)
	defer cancel()

	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetBool("raw")
	promptOnly, _ := cmd.Flags().GetBool("prompt-only")

	svc, s, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := svc.Report(ctx, period)
	if err != nil {
		return err
	}
	snap := summary.Snapshot{Report: report, GeneratedAt: time.Now()}

	if promptOnly {
		fmt.Println(summary.BuildPrompt(snap))
		return nil
	}

	summarizer, err := summary.New(ctx, cfg)
	if err != nil {
		return err
	}
	text, err := summarizer.Summarize(ctx, snap)
	if err != nil {
		return err
	}

	if raw {
		fmt.Println(text)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}
	fmt.Print(rendered)
	return nil
}
