package nutricoach

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCommand(t, "--help")
	if out == "" {
		t.Fatalf("expected help output")
	}
}

func TestProfileAndTodayFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutricoach.db")

	out := runCommand(t, "--db", path,
		"profile", "set", "--age", "30", "--gender", "male",
		"--weight", "70", "--height", "175", "--activity", "moderate", "--goal", "loss")
	if !strings.Contains(out, "2056 kcal") {
		t.Fatalf("expected derived targets in output, got %q", out)
	}

	runCommand(t, "--db", path, "food", "add", "--name", "Oatmeal", "--calories", "350", "--meal", "breakfast")
	runCommand(t, "--db", path, "water", "add", "500")

	out = runCommand(t, "--db", path, "today")
	if !strings.Contains(out, "Intake: 350 kcal") {
		t.Fatalf("expected intake summary, got %q", out)
	}
	if !strings.Contains(out, "Water: 500 / 2450 ml") {
		t.Fatalf("expected water progress, got %q", out)
	}
}

func TestTargetsOverrideRejectsZeroCalories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutricoach.db")
	runCommand(t, "--db", path,
		"profile", "set", "--age", "25", "--gender", "female",
		"--weight", "60", "--height", "165")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "targets", "set", "--calories", "0"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected zero-calorie override to fail")
	}
}

func TestSyncReportsJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutricoach.db")
	runCommand(t, "--db", path, "food", "add", "--name", "Toast", "--calories", "200")

	out := runCommand(t, "--db", path, "sync")
	if !strings.Contains(out, "Install id:") {
		t.Fatalf("expected install id, got %q", out)
	}
	if !strings.Contains(out, "food_log") {
		t.Fatalf("expected journal entry for food write, got %q", out)
	}
}
