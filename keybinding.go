package main

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyNames maps config key names to Ebiten keys.
var keyNames = buildKeyNames()

func buildKeyNames() map[string]ebiten.Key {
	m := map[string]ebiten.Key{
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Delete":     ebiten.KeyDelete,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,

		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		"NumpadAdd":      ebiten.KeyNumpadAdd,
		"NumpadSubtract": ebiten.KeyNumpadSubtract,
		"NumpadEnter":    ebiten.KeyNumpadEnter,
	}
	// Letters, digits and numpad digits are contiguous in Ebiten's key space.
	for i := 0; i < 26; i++ {
		m["Key"+string(rune('A'+i))] = ebiten.KeyA + ebiten.Key(i)
	}
	for i := 0; i < 10; i++ {
		m["Key"+strconv.Itoa(i)] = ebiten.Key0 + ebiten.Key(i)
		m["Numpad"+strconv.Itoa(i)] = ebiten.KeyNumpad0 + ebiten.Key(i)
	}
	return m
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseKeyString parses a key string like "Shift+KeyB".
func parseKeyString(keyStr string) (KeyCombination, error) {
	shift, ctrl, alt, name, err := parseModifiers(keyStr)
	if err != nil {
		return KeyCombination{}, err
	}
	key, ok := keyNames[name]
	if !ok {
		return KeyCombination{}, fmt.Errorf("unknown key: %s", name)
	}
	return KeyCombination{Key: key, Shift: shift, Ctrl: ctrl, Alt: alt}, nil
}

// modifiersMatch reports whether exactly the wanted modifiers are held.
func modifiersMatch(shift, ctrl, alt bool) bool {
	return shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// KeybindingManager resolves configured key strings to actions
type KeybindingManager struct {
	keybindings map[string][]string
	combos      map[string][]KeyCombination
}

// NewKeybindingManager creates a new KeybindingManager. Invalid key strings
// are skipped; config loading has already reported them.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// CheckAction checks if any keybinding for the given action was just pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, c := range km.combos[action] {
		if inpututil.IsKeyJustPressed(c.Key) && modifiersMatch(c.Shift, c.Ctrl, c.Alt) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if one of its keys was pressed
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// UpdateKeybindings replaces the keybindings map
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.combos = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, k := range keys {
			c, err := parseKeyString(k)
			if err != nil {
				debugLog("skipping key %q for %s: %v", k, action, err)
				continue
			}
			km.combos[action] = append(km.combos[action], c)
		}
	}
}
