package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "2 operands")
	if err := tm.Measure("compute", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	wantErr := errors.New("boom")
	if err := tm.Measure("format", func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("Measure returned %v", err)
	}
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Note != "2 operands" || report.Phases[2].Note != "failed" {
		t.Fatalf("unexpected notes: %+v", report.Phases)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "parse", "compute", "format", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimerReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
