package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Manage the movies quizzes are generated for",
}

var movieAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := store.MovieInput{Title: args[0]}
		in.ReleaseYear, _ = cmd.Flags().GetInt("year")
		in.Genre, _ = cmd.Flags().GetString("genre")
		in.Director, _ = cmd.Flags().GetString("director")
		in.Plot, _ = cmd.Flags().GetString("plot")

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		m, err := svc.AddMovie(cmd.Context(), in)
		if err != nil {
			return describe(err)
		}
		fmt.Printf("Added movie #%d: %s\n", m.ID, movieLabel(m))
		return nil
	},
}

var movieListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		movies, err := svc.Movies(cmd.Context())
		if err != nil {
			return err
		}
		if len(movies) == 0 {
			fmt.Println("No movies yet. Add one with `moviequiz movie add <title>`.")
			return nil
		}
		for _, m := range movies {
			fmt.Printf("%4d  %s\n", m.ID, movieLabel(m))
		}
		return nil
	},
}

func movieLabel(m store.Movie) string {
	if m.ReleaseYear > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.ReleaseYear)
	}
	return m.Title
}

func init() {
	movieAddCmd.Flags().Int("year", 0, "Release year")
	movieAddCmd.Flags().String("genre", "", "Genre")
	movieAddCmd.Flags().String("director", "", "Director")
	movieAddCmd.Flags().String("plot", "", "Short plot summary, used to ground generated questions")

	movieCmd.AddCommand(movieAddCmd, movieListCmd)
}
