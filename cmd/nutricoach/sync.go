package nutricoach

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/app"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Show cloud sync status and recent write outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		out := cmd.OutOrStdout()
		if !cfg.RemoteConfigured() {
			fmt.Fprintln(out, "Remote sync: not configured (set NUTRICOACH_REMOTE_URL and NUTRICOACH_REMOTE_KEY)")
		} else {
			fmt.Fprintf(out, "Remote: %s\n", cfg.RemoteURL)
			describeKey(cmd, cfg.RemoteKey)
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			fmt.Fprintf(out, "Install id: %s\n", tr.Gateway().UserID())
			if cfg.RemoteConfigured() {
				if tr.Gateway().CheckConnection(ctx) {
					fmt.Fprintln(out, "Connection: online")
				} else {
					fmt.Fprintln(out, "Connection: offline (writes are kept locally)")
				}
			}
			entries, err := tr.Gateway().RecentJournal(10)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No writes recorded yet")
				return nil
			}
			fmt.Fprintln(out, "WHEN\tCOLLECTION\tOP\tSYNCED")
			for _, e := range entries {
				synced := "no"
				if e.RemoteOK {
					synced = "yes"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", e.OccurredAt, e.Collection, e.Op, synced)
			}
			return nil
		})
	},
}

// describeKey decodes the remote service key without verifying it; the
// signature belongs to the server. This only surfaces role and expiry so a
// pasted wrong key is caught early.
func describeKey(cmd *cobra.Command, key string) {
	token, _, err := jwt.NewParser().ParseUnverified(key, jwt.MapClaims{})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Key: not a JWT (expected a service API key)")
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}
	if role, ok := claims["role"].(string); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Key role: %s\n", role)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if exp.Before(time.Now()) {
			fmt.Fprintf(cmd.OutOrStdout(), "Key expired: %s\n", exp.Format("2006-01-02"))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Key expires: %s\n", exp.Format("2006-01-02"))
		}
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
