package nutricoach

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutricoach",
	Short: "nutricoach tracks nutrition, hydration, and habits from your terminal",
	Long:  "nutricoach is a local-first nutrition coaching CLI with calorie and macro targets, daily scoring, meal plans, and optional AI analysis and cloud sync.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
