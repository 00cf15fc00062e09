package records

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the total times and deaths of a set of runs.
type Stats struct {
	Count      int
	Best       float64
	Mean       float64
	StdDev     float64
	Median     float64
	MeanDeaths float64
}

func Summarize(runs []Run) Stats {
	if len(runs) == 0 {
		return Stats{}
	}
	totals := make([]float64, len(runs))
	deaths := make([]float64, len(runs))
	for i, r := range runs {
		totals[i] = r.Total
		deaths[i] = float64(r.Deaths)
	}

	s := Stats{Count: len(runs), Best: floats.Min(totals), MeanDeaths: stat.Mean(deaths, nil)}
	s.Mean, s.StdDev = stat.MeanStdDev(totals, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	sorted := append([]float64(nil), totals...)
	floats.Argsort(sorted, make([]int, len(sorted)))
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

type csvRow struct {
	ID         int64   `csv:"id"`
	FinishedAt string  `csv:"finished_at"`
	Total      float64 `csv:"total_seconds"`
	Deaths     int     `csv:"deaths"`
	Levels     string  `csv:"level_seconds"`
}

// WriteCSV writes one row per run with a header. Level times are joined
// with semicolons.
func WriteCSV(w io.Writer, runs []Run) error {
	rows := make([]csvRow, 0, len(runs))
	for _, r := range runs {
		levels := make([]string, len(r.LevelTimes))
		for i, secs := range r.LevelTimes {
			levels[i] = strconv.FormatFloat(secs, 'f', 2, 64)
		}
		rows = append(rows, csvRow{
			ID:         r.ID,
			FinishedAt: r.FinishedAt.UTC().Format(time.RFC3339),
			Total:      r.Total,
			Deaths:     r.Deaths,
			Levels:     strings.Join(levels, ";"),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("records: write csv: %w", err)
	}
	return nil
}
