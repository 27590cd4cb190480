package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tactiz/internal/store"
	"github.com/abhisek/tactiz/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the coach's LLM audit trail",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm requests: %w", err)
		}
		if failed {
			events = onlyFailed(events)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM requests recorded."))
			return nil
		}
		writeLLMEvents(out, events)
		return nil
	},
}

func onlyFailed(events []store.LLMRequestEventRecord) []store.LLMRequestEventRecord {
	var kept []store.LLMRequestEventRecord
	for _, e := range events {
		if !e.Success {
			kept = append(kept, e)
		}
	}
	return kept
}

func writeLLMEvents(w io.Writer, events []store.LLMRequestEventRecord) {
	fmt.Fprintf(w, "%6s  %-16s  %-8s  %-10s  %-24s  %7s  %6s\n",
		"Seq", "When", "Provider", "Purpose", "Model", "Tokens", "Ms")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, e := range events {
		fmt.Fprintf(w, "%6d  %-16s  %-8s  %-10s  %-24s  %7d  %6d\n",
			e.Sequence,
			e.Timestamp.Local().Format("01-02 15:04:05"),
			e.Provider,
			e.Purpose,
			truncate(e.Model, 24),
			e.InputTokens+e.OutputTokens,
			e.LatencyMs,
		)
		if !e.Success {
			fmt.Fprintln(w, "        "+theme.Incorrect.Render("error: "+e.ErrorMessage))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize LLM token usage per purpose",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query llm usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM usage recorded."))
			return nil
		}

		var total store.LLMUsage
		total.Purpose = "total"
		for _, u := range usage {
			fmt.Fprintln(out, usageLine(u))
			total.Calls += u.Calls
			total.Failures += u.Failures
			total.InputTokens += u.InputTokens
			total.OutputTokens += u.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintln(out, usageLine(total))
		return nil
	},
}

func usageLine(u store.LLMUsage) string {
	line := fmt.Sprintf("%s %4d calls  %8d in  %8d out",
		theme.Label.Render(u.Purpose), u.Calls, u.InputTokens, u.OutputTokens)
	if u.AvgLatencyMs > 0 {
		line += fmt.Sprintf("  ~%dms", u.AvgLatencyMs)
	}
	if u.Failures > 0 {
		line += "  " + theme.Warning.Render(fmt.Sprintf("%d failed", u.Failures))
	}
	return line
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Only show requests for this purpose (e.g. coach)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd, llmStatsCmd)
}
