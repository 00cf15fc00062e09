package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/platformer/records"
)

func seededStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := records.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, total := range []float64{95.5, 61.25} {
		_, err := store.Save(records.Run{
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
			Total:      total,
			Deaths:     i,
			LevelTimes: []float64{total / 2, total / 2},
		})
		if err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	db := seededStore(t)

	cases := []struct {
		name string
		args []string
		want []string
	}{
		{name: "list", args: []string{"list", "--db", db}, want: []string{"Finished", "01:35:50", "01:01:25", "00:47:75"}},
		{name: "stats", args: []string{"stats", "--db", db}, want: []string{"Runs", "2", "Best", "01:01:25"}},
		{name: "export", args: []string{"export", "--db", db}, want: []string{"id,finished_at,total_seconds,deaths,level_seconds", "47.75;47.75"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := execute(t, c.args...)
			for _, w := range c.want {
				if !strings.Contains(out, w) {
					t.Fatalf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	out := execute(t, "list", "--db", db)
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Fatalf("unexpected output %q", out)
	}
}
