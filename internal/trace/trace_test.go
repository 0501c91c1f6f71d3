package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off":     LevelOff,
		"ERROR":   LevelError,
		"command": LevelCommand,
		"case":    LevelCase,
		" debug ": LevelDebug,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if LevelCommand.ShouldEmit(ScopeCase) {
		t.Fatal("command level must not emit case events")
	}
	if !LevelCase.ShouldEmit(ScopeCase) || LevelCase.ShouldEmit(ScopeOp) {
		t.Fatal("case level must emit case events and drop op events")
	}
	if !LevelDebug.ShouldEmit(ScopeOp) {
		t.Fatal("debug level must emit op events")
	}
	if LevelOff.ShouldEmit(ScopeCommand) {
		t.Fatal("off must emit nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelCase, FormatText)

	span := Begin(tr, ScopeCommand, "divmod", 0)
	child := Begin(tr, ScopeCase, "case", span.ID())
	child.WithExtra("n", "10").WithExtra("d", "4").End("ok")
	Begin(tr, ScopeOp, "lsh", child.ID()).End("")
	span.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (op scope filtered), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ command:divmod") {
		t.Fatalf("unexpected begin line: %q", lines[0])
	}
	if !strings.Contains(lines[2], "← case:case (ok) {d=4, n=10}") {
		t.Fatalf("unexpected end line: %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelCommand, FormatNDJSON)
	Point(tr, ScopeCommand, "parse", "2 operands", 0)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["name"] != "parse" || got["detail"] != "2 operands" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestStreamTracerErrorLevelStreamsNothing(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeCommand, "check", 0).End("")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at error level, got %q", buf.String())
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeOp, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("event %d = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestNewBothModeExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeCase, "case", 0).End("failed")

	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("expected a ring tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("expected 2 ring events, got %d", n)
	}
	if buf.Len() != 0 {
		t.Fatalf("stream must stay silent at error level, got %q", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop without a tracer")
	}
	tr := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(tr, ScopeCommand, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", CurrentSpan(ctx), span.ID())
	}
}

func TestHeartbeatStops(t *testing.T) {
	tr := NewRingTracer(64, LevelCommand)
	h := StartHeartbeat(tr, time.Millisecond)
	if h == nil {
		t.Fatal("expected heartbeat")
	}
	time.Sleep(10 * time.Millisecond)
	h.Stop()
	h.Stop()

	n := len(tr.Snapshot())
	if n == 0 {
		t.Fatal("expected heartbeat events")
	}
	time.Sleep(5 * time.Millisecond)
	if len(tr.Snapshot()) != n {
		t.Fatal("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("expected nil heartbeat for disabled tracer")
	}
}
