package hw

import "sync"

const keyboardBufferSize = 16

// Machine - the PC board: PICs and keyboard controller behind one port bus.
// Accepted interrupts are delivered as vectors on Interrupts(), at most one outstanding at a time.
type Machine struct {
	mu sync.Mutex

	master pic
	slave  pic

	keyboard []byte
	eois     int

	interrupts chan byte
}

func NewMachine() *Machine {
	return &Machine{
		master:     newPIC(0x08),
		slave:      newPIC(0x70),
		keyboard:   make([]byte, 0, keyboardBufferSize),
		interrupts: make(chan byte, 1),
	}
}

func (that *Machine) ReadPort(port uint16) byte {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch port {
	case KeyboardStatus:
		if len(that.keyboard) > 0 {
			return StatusOutputFull
		}
		return 0
	case KeyboardData:
		return that.readScancodeLocked()
	case PIC1Data:
		return that.master.mask
	case PIC2Data:
		return that.slave.mask
	case PIC1Command:
		return that.master.irr
	case PIC2Command:
		return that.slave.irr
	default:
		return floating
	}
}

func (that *Machine) WritePort(port uint16, data byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch port {
	case PIC1Command:
		if data == EOI {
			that.eois++
		}
		that.master.command(data)
	case PIC1Data:
		that.master.data(data)
	case PIC2Command:
		that.slave.command(data)
	case PIC2Data:
		that.slave.data(data)
	default:
		return
	}

	that.deliverLocked()
}

// PushScancode - a key event arriving from the keyboard. Returns false when the controller buffer is full.
func (that *Machine) PushScancode(code byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.keyboard) == keyboardBufferSize {
		return false
	}

	that.keyboard = append(that.keyboard, code)
	that.master.raise(IRQKeyboard)
	that.deliverLocked()

	return true
}

func (that *Machine) Interrupts() <-chan byte {
	return that.interrupts
}

// EOICount - number of end-of-interrupt commands written to the master PIC.
func (that *Machine) EOICount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.eois
}

// InService - reports whether the master PIC has a line in service.
func (that *Machine) InService() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.master.isr != 0
}

func (that *Machine) readScancodeLocked() byte {
	if len(that.keyboard) == 0 {
		return 0
	}

	code := that.keyboard[0]
	that.keyboard = append(that.keyboard[:0], that.keyboard[1:]...)

	if len(that.keyboard) > 0 {
		that.master.raise(IRQKeyboard)
	}

	return code
}

func (that *Machine) deliverLocked() {
	vector, ok := that.master.acknowledge()
	if !ok {
		return
	}

	// in-service gating keeps at most one vector in flight; an EOI written without taking the
	// vector would find the channel full, so the request stays latched instead
	select {
	case that.interrupts <- vector:
	default:
		that.master.requeue(vector)
	}
}
