package hw

// pic models one 8259: request, in-service and mask registers plus the ICW init sequence.
type pic struct {
	offset byte
	mask   byte
	irr    byte
	isr    byte

	// icw - index of the next expected initialization word; 0 when operational.
	icw int
}

func newPIC(offset byte) pic {
	return pic{offset: offset, mask: 0xff}
}

func (that *pic) command(data byte) {
	switch {
	case data&0x10 != 0:
		// ICW1
		that.icw = 2
		that.irr = 0
		that.isr = 0
		that.mask = 0
	case data == EOI:
		that.eoi()
	}
}

func (that *pic) data(data byte) {
	switch that.icw {
	case 2:
		that.offset = data &^ 0x07
		that.icw = 3
	case 3:
		that.icw = 4
	case 4:
		that.icw = 0
	default:
		that.mask = data
	}
}

func (that *pic) raise(irq int) {
	that.irr |= 1 << irq
}

// eoi - clears the highest priority in-service line.
func (that *pic) eoi() {
	for irq := 0; irq < 8; irq++ {
		if that.isr&(1<<irq) != 0 {
			that.isr &^= 1 << irq
			return
		}
	}
}

// acknowledge - picks the next deliverable line, marking it in service.
// Nothing is delivered while another line is in service or during initialization.
func (that *pic) acknowledge() (byte, bool) {
	if that.icw != 0 || that.isr != 0 {
		return 0, false
	}

	pending := that.irr &^ that.mask
	for irq := 0; irq < 8; irq++ {
		bit := byte(1 << irq)
		if pending&bit != 0 {
			that.irr &^= bit
			that.isr |= bit
			return that.offset + byte(irq), true
		}
	}

	return 0, false
}

// requeue - undoes acknowledge for a vector that could not be delivered.
func (that *pic) requeue(vector byte) {
	bit := byte(1 << (vector - that.offset))
	that.isr &^= bit
	that.irr |= bit
}
