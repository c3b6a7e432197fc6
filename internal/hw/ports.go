// Package hw emulates the few x86 PC devices the kernel talks to: the two cascaded 8259 interrupt
// controllers and the 8042 keyboard controller, reachable only through port I/O.
package hw

const (
	PIC1Command uint16 = 0x20
	PIC1Data    uint16 = 0x21
	PIC2Command uint16 = 0xa0
	PIC2Data    uint16 = 0xa1

	KeyboardData   uint16 = 0x60
	KeyboardStatus uint16 = 0x64
)

const (
	// EOI - non-specific end-of-interrupt command for a PIC command port.
	EOI byte = 0x20

	// StatusOutputFull - keyboard status bit set while a scancode waits on the data port.
	StatusOutputFull byte = 0x01

	icw1Init = 0x11
	icw4x86  = 0x01

	MasterOffset byte = 0x20
	SlaveOffset  byte = 0x28

	IRQKeyboard = 1

	// KeyboardVector - interrupt vector of IRQ1 once the master PIC is remapped.
	KeyboardVector = MasterOffset + IRQKeyboard

	// floating - value read from a port nothing answers on.
	floating byte = 0xff
)

// Bus - port I/O as seen by the CPU.
type Bus interface {
	ReadPort(port uint16) byte
	WritePort(port uint16, data byte)
}

// InitPIC - remaps both PICs past the CPU exception vectors and masks every line.
func InitPIC(bus Bus) {
	// ICW1 - begin initialization
	bus.WritePort(PIC1Command, icw1Init)
	bus.WritePort(PIC2Command, icw1Init)

	// ICW2 - vector offsets
	bus.WritePort(PIC1Data, MasterOffset)
	bus.WritePort(PIC2Data, SlaveOffset)

	// ICW3 - no cascading
	bus.WritePort(PIC1Data, 0x00)
	bus.WritePort(PIC2Data, 0x00)

	// ICW4 - environment info
	bus.WritePort(PIC1Data, icw4x86)
	bus.WritePort(PIC2Data, icw4x86)

	bus.WritePort(PIC1Data, 0xff)
	bus.WritePort(PIC2Data, 0xff)
}

// EnableKeyboard - unmasks IRQ1 only.
func EnableKeyboard(bus Bus) {
	bus.WritePort(PIC1Data, ^byte(1<<IRQKeyboard))
}
