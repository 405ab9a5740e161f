package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist <user-id> <movie-id>",
	Short: "Put a movie on a player's watchlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		movieID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[1])
		}

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := svc.RecordWatchlistAdd(cmd.Context(), userID, movieID)
		if err != nil {
			return describe(err)
		}
		if out.Added {
			fmt.Println("Added to watchlist.")
		} else {
			fmt.Println("Already on the watchlist.")
		}
		printUnlocked(out.Achievements)
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <user-id> <movie-id> <rating>",
	Short: "Review a movie with 1 to 5 stars",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		in := engine.ReviewInput{UserID: userID}
		if in.MovieID, err = strconv.ParseInt(args[1], 10, 64); err != nil {
			return fmt.Errorf("invalid movie id %q", args[1])
		}
		if in.Rating, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid rating %q", args[2])
		}
		in.Comment, _ = cmd.Flags().GetString("comment")

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := svc.RecordReview(cmd.Context(), in)
		if err != nil {
			return describe(err)
		}
		fmt.Printf("Review #%d saved.\n", out.ReviewID)
		printUnlocked(out.Achievements)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringP("comment", "m", "", "Review text")
}
