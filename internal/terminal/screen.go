// Package terminal hosts the kernel's screen and keyboard on a tcell terminal.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/keyboard"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/render"
)

// vgaPalette - the 16 text-mode colors in VGA attribute order.
var vgaPalette = [16]tcell.Color{
	tcell.ColorBlack, tcell.ColorNavy, tcell.ColorGreen, tcell.ColorTeal,
	tcell.ColorMaroon, tcell.ColorPurple, tcell.ColorOlive, tcell.ColorSilver,
	tcell.ColorGray, tcell.ColorBlue, tcell.ColorLime, tcell.ColorAqua,
	tcell.ColorRed, tcell.ColorFuchsia, tcell.ColorYellow, tcell.ColorWhite,
}

// keyChars - non-rune keys that still have a character in the scancode table.
var keyChars = map[tcell.Key]rune{
	tcell.KeyEnter:      '\n',
	tcell.KeyTab:        '\t',
	tcell.KeyBackspace:  '\b',
	tcell.KeyBackspace2: '\b',
}

type Screen struct {
	screen  tcell.Screen
	encoder keyboard.Encoder
}

func New(encoder keyboard.Encoder) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return NewWithScreen(screen, encoder)
}

func NewWithScreen(screen tcell.Screen, encoder keyboard.Encoder) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	screen.HideCursor()

	return &Screen{screen: screen, encoder: encoder}, nil
}

func (that *Screen) Show(_ context.Context, frame *render.Frame) error {
	that.screen.Clear()

	for row := range frame {
		for col, cell := range frame[row] {
			that.screen.SetContent(col, row, rune(cell.Char), nil, style(cell.Attr))
		}
	}

	that.screen.Show()

	return nil
}

// Run - forwards key presses as scancodes until ctx ends or Ctrl-C/Esc is pressed.
func (that *Screen) Run(ctx context.Context, sink keyboard.Sink) error {
	stop := context.AfterFunc(ctx, func() {
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		switch ev := that.screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC, tcell.KeyEscape:
				return keyboard.ErrQuit
			case tcell.KeyRune:
				keyboard.Press(that.encoder, ev.Rune(), sink)
			default:
				if ch, ok := keyChars[ev.Key()]; ok {
					keyboard.Press(that.encoder, ch, sink)
				}
			}
		}
	}
}

func (that *Screen) Close() {
	that.screen.Fini()
}

func style(attr byte) tcell.Style {
	return tcell.StyleDefault.
		Foreground(vgaPalette[attr&0x0f]).
		Background(vgaPalette[(attr>>4)&0x07])
}
