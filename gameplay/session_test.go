package gameplay

import "testing"

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00"},
		{"half_second", 0.5, "00:00:50"},
		{"over_a_minute", 125.34, "02:05:34"},
		{"exact_minute", 60, "01:00:00"},
		{"hundredths_truncate", 9.999, "00:09:99"},
		{"negative_clamps", -3, "00:00:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FormatElapsed(c.seconds); got != c.want {
				t.Fatalf("FormatElapsed(%v) = %q, want %q", c.seconds, got, c.want)
			}
		})
	}
}

func TestFormatTotal(t *testing.T) {
	cases := map[float64]string{
		125.3:   "125.3",
		125.346: "125.35",
		42:      "42",
		0.004:   "0",
	}
	for in, want := range cases {
		if got := FormatTotal(in); got != want {
			t.Fatalf("FormatTotal(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTotalsSumAndClone(t *testing.T) {
	totals := newTotals()
	totals.record(1, 10.5)
	totals.record(3, 20.25)
	totals.record(4, 99)
	totals.record(0, 99)

	if got := totals.Sum(); got != 30.75 {
		t.Fatalf("expected 30.75, got %v", got)
	}

	clone := totals.Clone()
	clone.LevelTimes[0] = 0
	if totals.LevelTimes[0] != 10.5 {
		t.Fatalf("clone must not share level times")
	}
}

func TestCompletionMessage(t *testing.T) {
	got := CompletionMessage(Totals{GrandTotal: 75.126, Deaths: 4})
	want := "You finished the game with a time of 75.13 and a death count of 4"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
