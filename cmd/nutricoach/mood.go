package nutricoach

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/tracker"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Track how you feel",
}

var moodLogCmd = &cobra.Command{
	Use:   "log <mood>",
	Short: "Log your current mood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, err := parseMood(args[0])
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			entry, err := tr.LogMood(mood)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged mood: %s\n", entry.Mood)
			return nil
		})
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged moods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			entries := tr.State().MoodLog
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No moods logged")
				return nil
			}
			for _, e := range entries {
				ts := time.UnixMilli(e.Timestamp).Local().Format("01-02 15:04")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ts, e.Mood)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(moodCmd)
	moodCmd.AddCommand(moodLogCmd, moodListCmd)
}
