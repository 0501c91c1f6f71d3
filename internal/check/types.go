package check

import (
	"fmt"
	"strings"
	"time"
)

// Property names one algebraic law checked against generated operands.
type Property string

const (
	// PropCmp checks compare(a,b) == -compare(b,a) and compare(a,a) == 0,
	// also across uncompacted copies.
	PropCmp Property = "cmp"
	// PropMul checks commutativity and multiplication by canonical zero.
	PropMul Property = "mul"
	// PropDivMod checks n == q*d + r with 0 <= r < d.
	PropDivMod Property = "divmod"
	// PropGCD checks that gcd(a,b) divides both and equals gcd(b, a mod b).
	PropGCD Property = "gcd"
	// PropShift checks a<<k == a * 2^k and the shifted bits.
	PropShift Property = "shift"
	// PropParse checks the decimal round trip.
	PropParse Property = "parse"
)

// AllProperties returns every property in report order.
func AllProperties() []Property {
	return []Property{PropCmp, PropMul, PropDivMod, PropGCD, PropShift, PropParse}
}

// ParseProperty converts a name to a Property.
func ParseProperty(s string) (Property, error) {
	name := Property(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range AllProperties() {
		if p == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown property %q (expected one of cmp|mul|divmod|gcd|shift|parse)", s)
}

// Status captures progress of one property.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// Event reports progress for a property.
type Event struct {
	Property Property
	Status   Status
	Done     int
	Total    int
	Err      error
	Elapsed  time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

// Options configures a run.
type Options struct {
	// Seed makes a run reproducible.
	Seed uint64
	// Cases is the number of generated cases per property.
	Cases int
	// MaxDigits bounds the decimal length of generated operands.
	MaxDigits int
	// Jobs limits how many properties run at once (0 means GOMAXPROCS).
	Jobs int
	// Properties selects what to check (nil means all).
	Properties []Property
}

// Failure is the first counterexample found for a property.
type Failure struct {
	Property Property
	Case     int
	Inputs   []string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: case %d (%s): %v", f.Property, f.Case, strings.Join(f.Inputs, ", "), f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is the outcome for one property.
type Result struct {
	Property Property
	Cases    int
	Failure  *Failure
	Elapsed  time.Duration
}

// Report collects the results of a run in property order.
type Report struct {
	Seed    uint64
	Results []Result
}

// Failed reports whether any property found a counterexample.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Failure != nil {
			return true
		}
	}
	return false
}

// Failures returns every counterexample in property order.
func (r Report) Failures() []*Failure {
	var out []*Failure
	for _, res := range r.Results {
		if res.Failure != nil {
			out = append(out, res.Failure)
		}
	}
	return out
}
