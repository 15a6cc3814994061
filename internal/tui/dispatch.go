package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher moves resolver completions onto the bubbletea update loop, so
// that every cache transition and the list recompute it triggers run on the
// same goroutine as Update and View. Completions that arrive before a program
// is attached are queued.
type Dispatcher struct {
	mu       sync.Mutex
	send     func(tea.Msg)
	pending  []func()
	flushing bool
}

// NewDispatcher creates a dispatcher with no program attached
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach routes completions to p. It may be called before p.Run.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.AttachFunc(p.Send)
}

// AttachFunc routes completions to send. Anything queued is delivered from a
// separate goroutine, since send may block until the program's event loop
// starts. Completions dispatched while that flush runs stay behind it.
func (d *Dispatcher) AttachFunc(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	queued := d.pending
	d.pending = nil
	if len(queued) == 0 {
		d.mu.Unlock()
		return
	}
	d.flushing = true
	d.mu.Unlock()

	go d.flush(send, queued)
}

func (d *Dispatcher) flush(send func(tea.Msg), queued []func()) {
	for {
		for _, fn := range queued {
			send(DispatchMsg{Fn: fn})
		}

		d.mu.Lock()
		queued = d.pending
		d.pending = nil
		if len(queued) == 0 {
			d.flushing = false
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

// Dispatch posts fn to the program. It is passed to detail.WithDispatch.
func (d *Dispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	send := d.send
	if send == nil || d.flushing {
		d.pending = append(d.pending, fn)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	send(DispatchMsg{Fn: fn})
}
