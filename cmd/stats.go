package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show a player's scores, streaks and achievements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := svc.UserStats(cmd.Context(), userID)
		if err != nil {
			return describe(err)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(s)
		}

		fmt.Printf("Player %d\n", s.UserID)
		rule(40)
		fmt.Printf("Quizzes played:   %d\n", s.Attempts)
		fmt.Printf("Best score:       %d\n", s.BestScore)
		fmt.Printf("Average score:    %.1f\n", s.AverageScore)
		fmt.Printf("Correct answers:  %d of %d (%.0f%%)\n", s.TotalCorrect, s.TotalQuestions, s.Accuracy*100)
		fmt.Printf("Longest streak:   %d\n", s.MaxStreak)
		if s.NextStreak > 0 {
			fmt.Printf("Next streak goal: %d in a row\n", s.NextStreak)
		}
		fmt.Printf("Watchlist:        %d\n", s.Watchlist)
		fmt.Printf("Reviews:          %d\n", s.Reviews)
		fmt.Printf("Achievements:     %d\n", len(s.Achievements))
		return nil
	},
}

var highscoresCmd = &cobra.Command{
	Use:   "highscores",
	Short: "Show the best score per player",
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, _ := cmd.Flags().GetInt64("movie")
		limit, _ := cmd.Flags().GetInt("limit")

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		scores, err := svc.Highscores(cmd.Context(), movieID, limit)
		if err != nil {
			return describe(err)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(scores)
		}
		if len(scores) == 0 {
			fmt.Println("No scores yet.")
			return nil
		}
		for i, h := range scores {
			level := h.Difficulty
			if d, err := quiz.ParseDifficulty(h.Difficulty); err == nil {
				level = d.DisplayName()
			}
			fmt.Printf("%2d. Player %-6s %6d  %-8s %s\n",
				i+1, strconv.FormatInt(h.UserID, 10), h.BestScore, level, h.AchievedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print as JSON")

	highscoresCmd.Flags().Int64("movie", 0, "Only scores for this movie")
	highscoresCmd.Flags().IntP("limit", "n", 10, "Number of players")
	highscoresCmd.Flags().Bool("json", false, "Print as JSON")
}
