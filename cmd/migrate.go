package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and seed the achievement catalog",
	Long: "Opening the database applies the schema. The built-in achievement catalog is then " +
		"written unless the stored catalog is already current; --force rewrites it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		svc, st, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer st.Close()

		// openService already seeded an outdated catalog.
		if !force {
			fmt.Println("Schema and achievement catalog are up to date.")
			return nil
		}
		res, err := svc.Seed(cmd.Context(), true)
		if err != nil {
			return err
		}
		fmt.Printf("Achievement catalog rewritten: %d inserted, %d updated.\n", res.Inserted, res.Updated)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("force", false, "Rewrite the achievement catalog even when current")
}
