package irq

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/cpu"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/hw"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/scancode"
)

type portWrite struct {
	port uint16
	data byte
}

// recordingBus - a port bus serving fixed status/data values and recording every access in order.
type recordingBus struct {
	status byte
	data   byte

	reads  []uint16
	writes []portWrite
}

func (that *recordingBus) ReadPort(port uint16) byte {
	that.reads = append(that.reads, port)

	switch port {
	case hw.KeyboardStatus:
		return that.status
	case hw.KeyboardData:
		return that.data
	default:
		return 0xff
	}
}

func (that *recordingBus) WritePort(port uint16, data byte) {
	that.writes = append(that.writes, portWrite{port: port, data: data})
}

func TestKeyboardHandler_Handle(t *testing.T) {
	eoi := []portWrite{{port: hw.PIC1Command, data: hw.EOI}}

	cases := []struct {
		name      string
		status    byte
		data      byte
		reads     []uint16
		wantEvent bool
		event     mailbox.Event
	}{
		{
			name:   "No data ready",
			status: 0,
			reads:  []uint16{hw.KeyboardStatus},
		},
		{
			name:   "Release code",
			status: hw.StatusOutputFull,
			data:   0x82,
			reads:  []uint16{hw.KeyboardStatus, hw.KeyboardData},
		},
		{
			name:   "Unmapped code",
			status: hw.StatusOutputFull,
			data:   0x1d,
			reads:  []uint16{hw.KeyboardStatus, hw.KeyboardData},
		},
		{
			name:      "Mapped code",
			status:    hw.StatusOutputFull,
			data:      0x06,
			reads:     []uint16{hw.KeyboardStatus, hw.KeyboardData},
			wantEvent: true,
			event:     '5',
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a keyboard controller in the given state
			bus := &recordingBus{status: tc.status, data: tc.data}
			mb := mailbox.New()
			handler := NewKeyboardHandler(bus, scancode.NewTranslator(&scancode.USQwerty), mb)

			// When: the interrupt is serviced
			handler.Handle()

			// Then: exactly one EOI is written, after the reads
			assert.Equal(t, tc.reads, bus.reads)
			assert.Equal(t, eoi, bus.writes)

			// Then: only mapped press codes reach the mailbox
			event, ok := mb.Take()
			require.Equal(t, tc.wantEvent, ok)
			assert.Equal(t, tc.event, event)
		})
	}
}

func TestDispatcher_Run(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Keyboard press reaches the mailbox and wakes the core", func(t *testing.T) {
		// Given: a machine with the keyboard line enabled and a dispatcher serving it
		machine := hw.NewMachine()
		hw.InitPIC(machine)
		hw.EnableKeyboard(machine)

		mb := mailbox.New()
		core := cpu.New()

		dispatcher := NewDispatcher(logger, machine, core)
		dispatcher.Register(hw.KeyboardVector, NewKeyboardHandler(machine, scancode.NewTranslator(&scancode.USQwerty), mb))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- dispatcher.Run(ctx)
		}()

		// When: '7' is pressed and released
		machine.PushScancode(0x08)
		machine.PushScancode(scancode.Release(0x08))

		// Then: the core is woken and the event is posted
		haltCtx, haltCancel := context.WithTimeout(ctx, time.Second)
		defer haltCancel()
		require.NoError(t, core.Halt(haltCtx))

		require.Eventually(t, func() bool {
			return machine.EOICount() == 2
		}, time.Second, time.Millisecond)

		event, ok := mb.Take()
		require.True(t, ok)
		assert.Equal(t, mailbox.Event('7'), event)
		assert.False(t, machine.InService())

		// When: the context ends
		cancel()

		// Then: the dispatcher returns cleanly
		require.NoError(t, <-done)
	})

	t.Run("Unregistered vector is acknowledged", func(t *testing.T) {
		// Given: no handler for the keyboard vector
		machine := hw.NewMachine()
		hw.InitPIC(machine)
		hw.EnableKeyboard(machine)

		dispatcher := NewDispatcher(logger, machine, cpu.New())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = dispatcher.Run(ctx)
		}()

		// When: a key arrives
		machine.PushScancode(0x02)

		// Then: the dispatcher still sends EOI so the line is not stuck
		require.Eventually(t, func() bool {
			return machine.EOICount() == 1 && !machine.InService()
		}, time.Second, time.Millisecond)
	})
}
