package model

// PersonaGroup splits the cast into the two halves of the game
type PersonaGroup string

const (
	GroupOutie PersonaGroup = "outie"
	GroupInnie PersonaGroup = "innie"
)

// Persona is a player's in-game cover identity. One per username, written at
// seed time and read-only afterwards.
type Persona struct {
	Username    Username
	Group       PersonaGroup
	Description string
}

// MurderClues are the privileged clue sets only the admin may read
type MurderClues struct {
	ToOuties []string
	ToInnies []string
}
