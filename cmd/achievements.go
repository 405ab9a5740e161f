package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Browse the achievement catalog and a player's unlocks",
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every achievement",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		entries := svc.Catalog(category)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(entries)
		}
		for _, e := range entries {
			fmt.Printf("%-18s  %-10s  %-10s  %s: %s\n", e.Code, e.Category, e.Rarity, e.Title, e.Description)
		}
		return nil
	},
}

var achievementsUserCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "List a player's achievements",
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

		earned, err := svc.UserAchievements(cmd.Context(), userID)
		if err != nil {
			return describe(err)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(earned)
		}
		if len(earned) == 0 {
			fmt.Printf("Player %d has no achievements yet.\n", userID)
			return nil
		}
		for _, a := range earned {
			fmt.Printf("🏆 %-22s  %s  %s\n", a.Title, a.EarnedAt, a.Description)
		}
		return nil
	},
}

var achievementsRecheckCmd = &cobra.Command{
	Use:   "recheck <user-id>",
	Short: "Replay a player's history and grant anything missed",
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

		granted, err := svc.Reevaluate(cmd.Context(), userID)
		if err != nil {
			return describe(err)
		}
		if len(granted) == 0 {
			fmt.Println("Nothing new to grant.")
			return nil
		}
		printUnlocked(granted)
		return nil
	},
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func init() {
	achievementsListCmd.Flags().StringP("category", "c", "", "quiz, streak, watchlist or review")
	achievementsListCmd.Flags().Bool("json", false, "Print as JSON")
	achievementsUserCmd.Flags().Bool("json", false, "Print as JSON")

	achievementsCmd.AddCommand(achievementsListCmd, achievementsUserCmd, achievementsRecheckCmd)
}
