// Package mailbox is the single-slot channel between the keyboard interrupt handler and the main loop.
//
// Post is called only from interrupt context and Take only from the main loop. The slot is one
// aligned 32-bit word, so a post and a take never observe a torn value and neither side ever waits.
// A post that lands before the previous event was taken overwrites it: only the newest key counts.
package mailbox

import "sync/atomic"

// Event - application character carried from the keyboard to the game. Opaque to the mailbox.
type Event byte

const empty int32 = -1

type Mailbox struct {
	slot atomic.Int32
}

func New() *Mailbox {
	mb := &Mailbox{}
	mb.slot.Store(empty)

	return mb
}

// Post - stores the event, replacing any event not yet taken.
func (that *Mailbox) Post(event Event) {
	that.slot.Store(int32(event))
}

// Take - reads and clears the slot in one step.
func (that *Mailbox) Take() (Event, bool) {
	v := that.slot.Swap(empty)
	if v == empty {
		return 0, false
	}

	return Event(v), true
}

// Pending - reports whether an event is waiting, without consuming it.
func (that *Mailbox) Pending() bool {
	return that.slot.Load() != empty
}
