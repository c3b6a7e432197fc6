package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-kernel/testing/suite"
)

var errDisplayGone = errors.New("display gone")

type mockDisplay struct {
	mock.Mock
}

func (that *mockDisplay) Show(ctx context.Context, frame *Frame) error {
	args := that.Called(ctx, frame)
	return args.Error(0)
}

func TestRender(t *testing.T) {
	t.Run("Fresh game shows position labels", func(t *testing.T) {
		// When: rendering the initial state
		frame := Render(entity.NewGameState())

		// Then: every cell shows its key and X is to move
		expected := strings.Join([]string{
			"TIC-TAC-TOE (1-9)  X vs O",
			"",
			" 1 | 2 | 3",
			"---+---+---",
			" 4 | 5 | 6",
			"---+---+---",
			" 7 | 8 | 9",
			"",
			"Turn: X   (press 1-9)   [R = restart]",
		}, "\n")

		assert.Equal(t, expected, frame.Text())
	})

	t.Run("Occupied cells show their mark", func(t *testing.T) {
		// Given: X on 1 and O on 5, O to move
		state := entity.NewGameState()
		state.Board[0] = entity.MarkX
		state.Board[4] = entity.MarkO
		state.Turn = entity.MarkO

		// When: rendering
		frame := Render(state)

		// Then: marks replace labels
		assert.Equal(t, " X | 2 | 3", frame.Line(2))
		assert.Equal(t, " 4 | O | 6", frame.Line(4))
		assert.Equal(t, "Turn: O   (press 1-9)   [R = restart]", frame.Line(8))
	})

	t.Run("Terminal phases", func(t *testing.T) {
		won := entity.GameState{
			Board:  entity.Board{entity.MarkO, entity.MarkO, entity.MarkO},
			Turn:   entity.MarkO,
			Phase:  entity.PhaseWon,
			Winner: entity.MarkO,
		}
		drawn := entity.GameState{Phase: entity.PhaseDrawn, Turn: entity.MarkX}

		assert.Equal(t, "Winner: O   [R = restart]", Render(won).Line(8))
		assert.Equal(t, "Draw!   [R = restart]", Render(drawn).Line(8))
	})

	t.Run("Every cell keeps the default attribute and the rest is blank", func(t *testing.T) {
		frame := Render(entity.NewGameState())

		for row := range frame {
			for col, cell := range frame[row] {
				assert.Equal(t, DefaultAttr, cell.Attr)
				if row > 8 {
					assert.Equal(t, byte(' '), cell.Char, "row %d col %d", row, col)
				}
			}
		}
	})
}

func TestCursor_Wraps(t *testing.T) {
	// Given: a cursor near the end of a row
	frame := NewFrame()
	cur := &cursor{frame: frame, loc: Columns - 1}

	// When: two characters are printed
	cur.print("ab")

	// Then: the second continues on the next row
	assert.Equal(t, byte('a'), frame[0][Columns-1].Char)
	assert.Equal(t, byte('b'), frame[1][0].Char)

	// When: printing past the last cell
	cur.loc = Lines*Columns - 1
	cur.print("yz")

	// Then: output is clipped
	assert.Equal(t, byte('y'), frame[Lines-1][Columns-1].Char)
}

func TestVideoMemory(t *testing.T) {
	// Given: a fresh video memory
	vm := NewVideoMemory()
	assert.Empty(t, vm.Text())

	// When: a frame is shown
	frame := Render(entity.NewGameState())
	require.NoError(t, vm.Show(context.Background(), frame))

	// Then: the buffer holds char/attr pairs in row order
	raw := vm.Bytes()
	require.Len(t, raw, Lines*Columns*2)
	assert.Equal(t, byte('T'), raw[0])
	assert.Equal(t, DefaultAttr, raw[1])
	assert.Equal(t, byte('1'), raw[2*(2*Columns+1)])

	assert.Equal(t, frame.Text(), vm.Text())
	assert.Equal(t, frame, vm.Frame())
}

func TestTextDisplay(t *testing.T) {
	// Given: a text display writing to a buffer
	var buf bytes.Buffer
	display := NewTextDisplay(&buf)

	// When: a frame is shown
	require.NoError(t, display.Show(context.Background(), Render(entity.NewGameState())))

	// Then: the screen is cleared and lines end with CRLF
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, clearScreen))
	assert.Contains(t, out, "\r\n 1 | 2 | 3\r\n")
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	frame := Render(entity.NewGameState())

	t.Run("Shows on every display", func(t *testing.T) {
		first, second := &mockDisplay{}, &mockDisplay{}
		first.On("Show", ctx, frame).Return(nil).Once()
		second.On("Show", ctx, frame).Return(nil).Once()

		require.NoError(t, Multi(first, second).Show(ctx, frame))

		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("A failing display does not hide the frame from the others", func(t *testing.T) {
		failing, working := &mockDisplay{}, &mockDisplay{}
		failing.On("Show", ctx, frame).Return(errDisplayGone).Once()
		working.On("Show", ctx, frame).Return(nil).Once()

		err := Multi(failing, working).Show(ctx, frame)

		require.ErrorIs(t, err, errDisplayGone)
		working.AssertExpectations(t)
	})
}

func TestDriver_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("Shows the rendered frame", func(t *testing.T) {
		display := &mockDisplay{}
		display.On("Show", ctx, mock.MatchedBy(func(frame *Frame) bool {
			return frame.Line(2) == " 1 | 2 | 3"
		})).Return(nil).Once()

		require.NoError(t, NewDriver(display).Render(ctx, entity.NewGameState()))

		display.AssertExpectations(t)
	})

	t.Run("Wraps display errors", func(t *testing.T) {
		display := &mockDisplay{}
		display.On("Show", ctx, mock.Anything).Return(errDisplayGone).Once()

		err := NewDriver(display).Render(ctx, entity.NewGameState())

		require.ErrorIs(t, err, errDisplayGone)
		assert.Contains(t, err.Error(), "failed to show frame")
	})
}

func TestRedisMirror_Show(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a subscriber on the mirror channel
	pubsub := st.Redis.Subscribe(ctx, "tictactoe:screen")
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	mirror := NewRedisMirror(st.Redis, "tictactoe:screen")

	// When: a frame is shown
	frame := Render(entity.NewGameState())
	require.NoError(t, mirror.Show(ctx, frame))

	// Then: the subscriber receives the frame text
	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, frame.Text(), msg.Payload)
}
