package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUnlocked(as []achievements.Achievement) {
	if len(as) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Achievements unlocked:")
	for _, a := range as {
		fmt.Printf("  🏆 %s: %s\n", a.Title, a.Description)
	}
}
