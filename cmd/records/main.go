// records inspects the run history written by the game's --records flag.
//
// Usage:
//
//	records list [--best] [--limit N]   - Show runs as a table
//	records stats                       - Summarize total times
//	records export [--csv PATH]         - Write runs as CSV
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/milk9111/platformer/gameplay"
	"github.com/milk9111/platformer/records"
	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagLimit  int
	flagBest   bool
	flagCSV    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "records",
		Short:         "Inspect finished platformer runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to the runs database")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show runs as a table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(s *records.Store) error {
				return runList(cmd.OutOrStdout(), s, flagLimit, flagBest)
			})
		},
	}
	list.Flags().IntVar(&flagLimit, "limit", 10, "Maximum runs to show (0 = all)")
	list.Flags().BoolVar(&flagBest, "best", false, "Order by total time instead of date")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize total times",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(s *records.Store) error {
				return runStats(cmd.OutOrStdout(), s)
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write every run as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(s *records.Store) error {
				if flagCSV == "" || flagCSV == "-" {
					return runExport(cmd.OutOrStdout(), s)
				}
				f, err := os.Create(flagCSV)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				if err := runExport(f, s); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	export.Flags().StringVar(&flagCSV, "csv", "-", "Output file (- for stdout)")

	root.AddCommand(list, stats, export)
	return root
}

func withStore(fn func(*records.Store) error) error {
	store, err := records.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(14)
)

func runList(out io.Writer, s *records.Store, limit int, best bool) error {
	var runs []records.Run
	var err error
	if best {
		runs, err = s.Best(limit)
	} else {
		runs, err = s.Recent(limit)
	}
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Finished", "Total", "Deaths", "Levels").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range runs {
		levels := ""
		for i, secs := range r.LevelTimes {
			if i > 0 {
				levels += " "
			}
			levels += gameplay.FormatElapsed(secs)
		}
		t.Row(
			fmt.Sprint(r.ID),
			r.FinishedAt.Format("2006-01-02 15:04"),
			gameplay.FormatElapsed(r.Total),
			fmt.Sprint(r.Deaths),
			levels,
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

func runStats(out io.Writer, s *records.Store) error {
	runs, err := s.Recent(0)
	if err != nil {
		return err
	}
	st := records.Summarize(runs)
	if st.Count == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	rows := []struct {
		label string
		value string
	}{
		{"Runs", fmt.Sprint(st.Count)},
		{"Best", gameplay.FormatElapsed(st.Best)},
		{"Median", gameplay.FormatElapsed(st.Median)},
		{"Mean", gameplay.FormatElapsed(st.Mean)},
		{"Std dev", fmt.Sprintf("%.2fs", st.StdDev)},
		{"Mean deaths", fmt.Sprintf("%.1f", st.MeanDeaths)},
	}
	for _, r := range rows {
		fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), r.value))
	}
	return nil
}

func runExport(out io.Writer, s *records.Store) error {
	runs, err := s.Recent(0)
	if err != nil {
		return err
	}
	return records.WriteCSV(out, runs)
}
