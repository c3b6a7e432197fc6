package scancode

import "github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"

const (
	releaseBit = 0x80
	codeMask   = 0x7f
)

// Table maps a 7-bit make code to a character. Zero means the key is unmapped.
type Table [128]byte

// USQwerty - scancode set 1, US layout, no modifiers.
var USQwerty = Table{
	0x01: 27,
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0a: '9', 0x0b: '0',
	0x0c: '-', 0x0d: '=', 0x0e: '\b', 0x0f: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1a: '[', 0x1b: ']', 0x1c: '\n',
	0x1e: 'a', 0x1f: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';',
	0x28: '\'', 0x29: '`',
	0x2b: '\\', 0x2c: 'z', 0x2d: 'x', 0x2e: 'c', 0x2f: 'v',
	0x30: 'b', 0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x37: '*',
	0x39: ' ',
	0x4a: '-',
	0x4e: '+',
}

// IsRelease - reports whether the code is a key-release (break) code.
func IsRelease(code byte) bool {
	return code&releaseBit != 0
}

// Release - the break code of a make code.
func Release(code byte) byte {
	return code | releaseBit
}

type Translator struct {
	table *Table
}

func NewTranslator(table *Table) *Translator {
	return &Translator{table: table}
}

// Translate - converts a raw code into a character event. Release codes and unmapped keys yield false.
func (that *Translator) Translate(code byte) (mailbox.Event, bool) {
	if IsRelease(code) {
		return 0, false
	}

	ch := that.table[code&codeMask]
	if ch == 0 {
		return 0, false
	}

	return mailbox.Event(ch), true
}

// Encode - finds the make code producing ch. Upper-case letters map to their key.
// When several codes produce ch, the lowest one wins.
func (that *Translator) Encode(ch rune) (byte, bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}

	if ch <= 0 || ch > codeMask {
		return 0, false
	}

	for code, mapped := range that.table {
		if rune(mapped) == ch {
			return byte(code), true
		}
	}

	return 0, false
}
