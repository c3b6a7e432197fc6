package entity

const (
	CellCount = 9

	firstLabel = '1'
)

// Phase - terminal or non-terminal status of a game.
type Phase uint8

const (
	PhaseInProgress Phase = iota
	PhaseWon
	PhaseDrawn
)

func (that Phase) String() string {
	switch that {
	case PhaseInProgress:
		return "in-progress"
	case PhaseWon:
		return "won"
	case PhaseDrawn:
		return "drawn"
	default:
		return "unknown"
	}
}

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [CellCount]Mark

// Winner - returns the mark of the first completed triple, or MarkEmpty.
// Two completed triples cannot happen under alternating play, so no tie-break is applied.
func (that *Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != MarkEmpty && a == b && b == c {
			return a
		}
	}

	return MarkEmpty
}

func (that *Board) Full() bool {
	for _, cell := range that {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// Label - character shown for a cell: its mark, or its 1-based position while empty.
func (that *Board) Label(idx int) byte {
	if that[idx] == MarkEmpty {
		return CellLabel(idx)
	}

	return that[idx].Char()
}

// CellLabel - maps a 0-based cell index to the key that selects it.
func CellLabel(idx int) byte {
	return byte(firstLabel + idx)
}

// CellIndex - maps a key to a 0-based cell index; false for anything outside '1'..'9'.
func CellIndex(ch byte) (int, bool) {
	if ch < firstLabel || ch > firstLabel+CellCount-1 {
		return 0, false
	}

	return int(ch - firstLabel), true
}

// GameState is a plain comparable value: two states are identical iff == holds.
type GameState struct {
	Board  Board
	Turn   Mark
	Phase  Phase
	Winner Mark
}

func NewGameState() GameState {
	return GameState{
		Turn:  MarkX,
		Phase: PhaseInProgress,
	}
}

func (that GameState) IsFinished() bool {
	return that.Phase != PhaseInProgress
}
