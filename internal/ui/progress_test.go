package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mpint/internal/check"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	props := []check.Property{check.PropMul, check.PropGCD, check.PropMul}
	m := NewProgressModel("check", props, nil).(*progressModel)
	if len(m.rows) != 2 {
		t.Fatalf("expected duplicate properties to collapse, got %d rows", len(m.rows))
	}

	m.Update(eventMsg(check.Event{Property: check.PropMul, Status: check.StatusRunning, Done: 5, Total: 10}))
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}

	m.Update(eventMsg(check.Event{Property: check.PropGCD, Status: check.StatusFailed, Done: 1, Total: 10, Err: errors.New("gcd: boom")}))
	if got := m.percent(); got != 0.75 {
		t.Fatalf("percent = %v, want 0.75", got)
	}

	view := m.View()
	for _, want := range []string{"mul", "5/10", "gcd", "failed", "gcd: boom"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelIgnoresUnknownProperty(t *testing.T) {
	m := NewProgressModel("check", []check.Property{check.PropCmp}, nil).(*progressModel)
	m.Update(eventMsg(check.Event{Property: check.PropShift, Status: check.StatusPassed}))
	if m.rows[0].status != check.StatusQueued {
		t.Fatalf("unexpected status %s", m.rows[0].status)
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	ch := make(chan check.Event)
	close(ch)
	m := NewProgressModel("check", []check.Property{check.PropCmp}, ch).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done {
		t.Fatal("model not marked done")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(m.View(), "done: check") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestProgressModelCtrlC(t *testing.T) {
	m := NewProgressModel("check", []check.Property{check.PropCmp}, nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !Interrupted(m) {
		t.Fatal("ctrl+c must interrupt")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(m.View(), "interrupted: check") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
}
