package entity

// Mark - content of a board cell, and the identity of a player.
type Mark uint8

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

func (that Mark) Char() byte {
	switch that {
	case MarkX:
		return 'X'
	case MarkO:
		return 'O'
	default:
		return ' '
	}
}

func (that Mark) String() string {
	return string(that.Char())
}

// Opponent - toggles X and O. Empty stays empty.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}
