// Package progress carries conversion progress events to interested
// parties: a callback, a channel or a logger.
package progress

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Phase names a stage of a conversion.
type Phase string

const (
	PhasePrefetch Phase = "prefetch"
	PhaseBuild    Phase = "build"
	PhaseFinalize Phase = "finalize"
	PhaseDone     Phase = "done"
)

// Percent ranges of each phase within a conversion.
var ranges = map[Phase][2]float64{
	PhasePrefetch: {50, 65},
	PhaseBuild:    {65, 85},
	PhaseFinalize: {85, 100},
	PhaseDone:     {100, 100},
}

// Event is one progress update.
type Event struct {
	Phase   Phase   `json:"phase"`
	Message string  `json:"message"`
	Percent float64 `json:"percent"`
}

// Reporter receives events. Implementations must be safe for concurrent
// use and must not block.
type Reporter interface {
	Report(Event)
}

// Scale maps a within-phase fraction in [0,1] to the phase's overall
// percent range.
func Scale(phase Phase, fraction float64) float64 {
	r, ok := ranges[phase]
	if !ok {
		return 0
	}
	fraction = math.Max(0, math.Min(1, fraction))
	return r[0] + (r[1]-r[0])*fraction
}

// At returns an event for phase at the given fraction of its range.
func At(phase Phase, fraction float64, message string) Event {
	return Event{Phase: phase, Message: message, Percent: Scale(phase, fraction)}
}

// Nop discards events.
type Nop struct{}

func (Nop) Report(Event) {}

// Func adapts a function to [Reporter].
type Func func(Event)

func (f Func) Report(e Event) { f(e) }

// Channel delivers events to C without blocking; events that do not fit
// in the buffer are dropped and counted.
type Channel struct {
	C       chan Event
	dropped atomic.Int64
}

// NewChannel returns a channel reporter with the given buffer size.
func NewChannel(buffer int) *Channel {
	return &Channel{C: make(chan Event, buffer)}
}

func (c *Channel) Report(e Event) {
	select {
	case c.C <- e:
	default:
		c.dropped.Add(1)
	}
}

// Dropped returns the number of events that did not fit.
func (c *Channel) Dropped() int64 { return c.dropped.Load() }

// Logger writes events to a charmbracelet logger at debug level.
type Logger struct{ L *log.Logger }

func (l Logger) Report(e Event) {
	l.L.Debug(e.Message, "phase", e.Phase, "percent", math.Round(e.Percent))
}

// Multi fans events out to several reporters.
type Multi []Reporter

func (m Multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// monotonic clamps percentages so they never decrease.
type monotonic struct {
	mu   sync.Mutex
	last float64
	next Reporter
}

// Monotonic wraps r so that the percent it sees never decreases and stays
// within [0,100]. Calls into r are serialized. A nil r yields a reporter that only tracks.
func Monotonic(r Reporter) Reporter {
	if r == nil {
		r = Nop{}
	}
	return &monotonic{next: r}
}

func (m *monotonic) Report(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Percent = math.Min(100, math.Max(e.Percent, m.last))
	m.last = e.Percent
	m.next.Report(e)
}
