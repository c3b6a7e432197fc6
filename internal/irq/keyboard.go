package irq

import (
	"github.com/rocketscienceinc/tictactoe-kernel/internal/hw"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"
)

type translator interface {
	Translate(code byte) (mailbox.Event, bool)
}

type poster interface {
	Post(event mailbox.Event)
}

// KeyboardHandler - the IRQ1 service routine. It never blocks and acknowledges the PIC on every path.
type KeyboardHandler struct {
	bus        hw.Bus
	translator translator
	mailbox    poster
}

func NewKeyboardHandler(bus hw.Bus, translator translator, mailbox poster) *KeyboardHandler {
	return &KeyboardHandler{
		bus:        bus,
		translator: translator,
		mailbox:    mailbox,
	}
}

func (that *KeyboardHandler) Handle() {
	// EOI goes out last, after the scancode has been consumed
	defer that.bus.WritePort(hw.PIC1Command, hw.EOI)

	if that.bus.ReadPort(hw.KeyboardStatus)&hw.StatusOutputFull == 0 {
		return
	}

	code := that.bus.ReadPort(hw.KeyboardData)

	if event, ok := that.translator.Translate(code); ok {
		that.mailbox.Post(event)
	}
}
