package session

// MenuChoice is what the title menu selected.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceOnePlayer
	ChoiceTwoPlayers
	ChoiceExit
)

var menuItems = []struct {
	label  string
	choice MenuChoice
}{
	{"1 PLAYER", ChoiceOnePlayer},
	{"2 PLAYERS", ChoiceTwoPlayers},
	{"EXIT", ChoiceExit},
}

// Title is the game's name as shown on the menu.
const Title = "BATTLE ARENA"

// Menu is the title screen selector. Up and Down wrap around.
type Menu struct {
	selected int
}

func (m *Menu) Up()   { m.selected = (m.selected + len(menuItems) - 1) % len(menuItems) }
func (m *Menu) Down() { m.selected = (m.selected + 1) % len(menuItems) }

// Select returns the highlighted choice.
func (m *Menu) Select() MenuChoice { return menuItems[m.selected].choice }

// Lines renders the options with a marker on the highlighted one.
func (m *Menu) Lines() []string {
	out := make([]string, len(menuItems))
	for i, it := range menuItems {
		prefix := "  "
		if i == m.selected {
			prefix = "> "
		}
		out[i] = prefix + it.label
	}
	return out
}

// Highlight moves the marker to the start option for n players. Other
// counts leave it where it is.
func (m *Menu) Highlight(players int) {
	for i, it := range menuItems {
		if it.choice.Players() == players && players > 0 {
			m.selected = i
			return
		}
	}
}

// Selected is the index of the highlighted line.
func (m *Menu) Selected() int { return m.selected }

// Players maps a start choice to a player count, 0 for anything else.
func (c MenuChoice) Players() int {
	switch c {
	case ChoiceOnePlayer:
		return 1
	case ChoiceTwoPlayers:
		return 2
	default:
		return 0
	}
}
