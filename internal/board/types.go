// internal/board/types.go
//
// Core type definitions for a clue-game board.
// Defines:
//   - Team: the affiliation of a card (red, blue, bystander, assassin).
//   - Layout: how many cards each group receives when a board is dealt.
//   - Board: the immutable four-way partition of the dealt words.

package board

// Team is the affiliation of a card on the board.
// Only Red and Blue can give or receive clues.
type Team string

const (
	NoTeam    Team = ""
	Red       Team = "red"
	Blue      Team = "blue"
	Bystander Team = "bystander"
	Assassin  Team = "assassin"
)

// Playable reports whether t is one of the two competing teams.
func (t Team) Playable() bool { return t == Red || t == Blue }

// Opponent returns the other competing team, or NoTeam for non-playing affiliations.
func (t Team) Opponent() Team {
	switch t {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoTeam
}

// Layout is the number of cards dealt to each group. One assassin is always dealt.
type Layout struct {
	First      Team // team dealt FirstTeam cards (it moves first)
	FirstTeam  int
	SecondTeam int
	Bystanders int
}

// DefaultLayout is the 25-card 9/8/7/1 deal with first moving first.
func DefaultLayout(first Team) Layout {
	return Layout{
		First:      first,
		FirstTeam:  9,
		SecondTeam: 8,
		Bystanders: 7,
	}
}

// Size is the number of pool words a deal consumes.
func (l Layout) Size() int {
	return l.FirstTeam + l.SecondTeam + l.Bystanders + 1
}

// Board is a dealt board. It is never mutated after Deal.
type Board struct {
	Red        []string `json:"red"`
	Blue       []string `json:"blue"`
	Bystanders []string `json:"bystanders"`
	Assassin   string   `json:"assassin"`
}
