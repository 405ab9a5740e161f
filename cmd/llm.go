package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/llm"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the trivia generation request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEvents(func(ctx context.Context, events store.EventRepo) error {
			records, err := events.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No LLM requests recorded.")
				return nil
			}

			fmt.Printf("%-5s  %-16s  %-10s  %-30s  %7s  %7s  %6s  %s\n",
				"ID", "When", "Purpose", "Model", "In", "Out", "Ms", "")
			rule(98)
			for _, e := range records {
				if purpose != "" && e.Purpose != purpose {
					continue
				}
				mark := "✓"
				if !e.Success {
					mark = "✗ " + truncate(e.ErrorMessage, 40)
				}
				fmt.Printf("%-5d  %-16s  %-10s  %-30s  %7d  %7d  %6d  %s\n",
					e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Purpose,
					truncate(e.Model, 30), e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		return withEvents(func(ctx context.Context, events store.EventRepo) error {
			e, err := events.GetLLMEvent(ctx, id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("request %d not found", id)
			}

			fmt.Printf("Request #%d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("  %s / %s  (%s)\n", e.Provider, e.Model, e.Purpose)
			fmt.Printf("  %d in, %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
			if e.ErrorMessage != "" {
				fmt.Printf("  failed: %s\n", e.ErrorMessage)
			}
			section("Prompt", e.RequestBody)
			section("Reply", e.ResponseBody)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(func(ctx context.Context, events store.EventRepo) error {
			byPurpose, err := events.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("usage by purpose: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded.")
				return nil
			}

			fmt.Printf("%-12s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "In", "Out", "Avg ms")
			rule(54)
			for _, u := range byPurpose {
				fmt.Printf("%-12s  %6d  %10d  %10d  %8d\n",
					u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			}

			byModel, err := events.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("usage by model: %w", err)
			}
			fmt.Println()
			fmt.Printf("%-32s  %6s  %10s\n", "Model", "Calls", "Cost (USD)")
			rule(52)
			var (
				total    float64
				unpriced []string
			)
			for _, u := range byModel {
				price := llm.LookupCost(u.Model)
				if price == nil {
					unpriced = append(unpriced, u.Model)
					fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "?")
					continue
				}
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatCost(c))
			}
			rule(52)
			fmt.Printf("%-32s  %6s  %10s\n", "Total", "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Printf("\nNo price known for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func withEvents(fn func(context.Context, store.EventRepo) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(context.Background(), st.EventRepo())
}

func section(title, body string) {
	fmt.Println()
	fmt.Println(title)
	rule(60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func rule(n int) {
	fmt.Println(strings.Repeat("─", n))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show requests with this purpose (e.g. "+llm.PurposeTriviaGen+")")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
