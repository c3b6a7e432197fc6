package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-kernel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"
)

// Step - the game's transition function. It is total: every event yields a state, and
// anything that is not a reset or a legal move returns the input state untouched.
// The bool reports whether the event was accepted (reset or a placed mark).
func Step(state entity.GameState, event mailbox.Event) (entity.GameState, bool) {
	if isReset(event) {
		return entity.NewGameState(), true
	}

	if state.IsFinished() {
		return state, false
	}

	idx, ok := entity.CellIndex(byte(event))
	if !ok {
		return state, false
	}

	if state.Board[idx] != entity.MarkEmpty {
		return state, false
	}

	state.Board[idx] = state.Turn
	updateGameStatus(&state)

	return state, true
}

func isReset(event mailbox.Event) bool {
	return event == 'r' || event == 'R'
}

// updateGameStatus - checks the game status after a move. Win is checked before draw.
func updateGameStatus(state *entity.GameState) {
	if winner := state.Board.Winner(); winner != entity.MarkEmpty {
		state.Phase = entity.PhaseWon
		state.Winner = winner
		return
	}

	if state.Board.Full() {
		state.Phase = entity.PhaseDrawn
		return
	}

	state.Turn = state.Turn.Opponent()
}
