package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and submit quizzes",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate <movie-id>",
	Short: "Draw a quiz for a movie, generating questions when the pool is short",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[0])
		}
		difficulty, _ := cmd.Flags().GetString("difficulty")
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, st, err := openService(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer st.Close()

		q, err := svc.GenerateQuiz(cmd.Context(), movieID, difficulty)
		if err != nil {
			return describe(err)
		}
		if asJSON {
			return printJSON(q)
		}

		fmt.Printf("Quiz for movie #%d (%s), %d new questions generated\n\n",
			q.MovieID, q.Difficulty.DisplayName(), q.Generated)
		for i, sq := range q.Questions {
			fmt.Printf("%d. [%d] %s\n", i+1, sq.ID, sq.Text)
			for j, c := range sq.Choices {
				fmt.Printf("     %c) %s\n", 'A'+j, c)
			}
		}
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <user-id> <question-id>=<answer>...",
	Short: "Score a quiz and grant achievements",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		sub := engine.Submission{UserID: userID, Answers: make(map[string]string, len(args)-1)}
		sub.MovieID, _ = cmd.Flags().GetInt64("movie")
		sub.Difficulty, _ = cmd.Flags().GetString("difficulty")
		for _, a := range args[1:] {
			id, answer, ok := strings.Cut(a, "=")
			if !ok {
				return fmt.Errorf("answer %q is not question-id=answer", a)
			}
			qid, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", id)
			}
			sub.Answers[id] = answer
			sub.QuestionIDs = append(sub.QuestionIDs, qid)
		}

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := svc.SubmitQuiz(cmd.Context(), sub)
		if err != nil {
			return describe(err)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out)
		}

		fmt.Printf("Score: %d  (%d of %d correct)\n", out.Score, out.CorrectCount, out.TotalQuestions)
		for _, r := range out.QuestionResults {
			if r.IsCorrect {
				fmt.Printf("  ✓ %s\n", r.QuestionText)
				continue
			}
			fmt.Printf("  ✗ %s (answer: %s)\n", r.QuestionText, r.CorrectAnswer)
		}
		printUnlocked(out.Achievements)
		return nil
	},
}

func init() {
	quizGenerateCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	quizGenerateCmd.Flags().Bool("json", false, "Print the quiz as JSON")

	quizSubmitCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	quizSubmitCmd.Flags().Int64("movie", 0, "Movie the quiz was drawn for")
	quizSubmitCmd.Flags().Bool("json", false, "Print the outcome as JSON")

	quizCmd.AddCommand(quizGenerateCmd, quizSubmitCmd)
}
