package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blightsong/internal/core"
)

// gameKeys binds key names to game actions. Movement accepts WASD, arrows
// and vim keys.
var gameKeys = map[string]core.Action{
	"w": core.ActionUp, "up": core.ActionUp, "k": core.ActionUp,
	"s": core.ActionDown, "down": core.ActionDown, "j": core.ActionDown,
	"a": core.ActionLeft, "left": core.ActionLeft, "h": core.ActionLeft,
	"d": core.ActionRight, "right": core.ActionRight, "l": core.ActionRight,

	"enter":  core.ActionConfirm,
	"b":      core.ActionBack,
	"esc":    core.ActionBack,
	"p":      core.ActionPause,
	" ":      core.ActionPause,
	"r":      core.ActionRestart,
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// menuActions maps the game actions that carry over to the menu.
var menuActions = map[core.Action]MenuAction{
	core.ActionUp:      MenuActionUp,
	core.ActionDown:    MenuActionDown,
	core.ActionLeft:    MenuActionLeft,
	core.ActionRight:   MenuActionRight,
	core.ActionConfirm: MenuActionSelect,
	core.ActionBack:    MenuActionBack,
	core.ActionQuit:    MenuActionQuit,
}

// menuOnlyKeys are checked before gameKeys in the menu.
var menuOnlyKeys = map[string]MenuAction{
	" ":   MenuActionSelect,
	"tab": MenuActionScoreboard,
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: gameKeys}
}

// MapKey translates a key message to a game action.
// Unbound keys map to ActionNone; isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.game[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if a, ok := menuOnlyKeys[msg.String()]; ok {
		return a
	}
	action, _ := km.MapKey(msg)
	return menuActions[action]
}
