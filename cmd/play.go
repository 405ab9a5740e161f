package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/app"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play quizzes in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		return runPlay(cmd, userID)
	},
}

func runPlay(cmd *cobra.Command, userID int64) error {
	if userID < 0 {
		return fmt.Errorf("invalid user id %d", userID)
	}

	svc, st, err := openService(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer st.Close()

	// The terminal belongs to the UI; logs go next to the database.
	if dbPath, err := resolveDBPath(); err == nil {
		logPath := filepath.Join(filepath.Dir(dbPath), "moviequiz.log")
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			lc := cfg.Logging
			lc.Output = f
			lc.Format = "json"
			logging.Init(lc)
		}
	}

	return app.Run(svc, app.Options{UserID: userID})
}

func init() {
	playCmd.Flags().Int64P("user", "u", 0, "Player number (prompted when omitted)")
}
