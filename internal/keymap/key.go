package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidKey indicates a key specification could not be parsed.
var ErrInvalidKey = errors.New("invalid key")

// namedKeys maps lowercase key names to tcell keys.
var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"cr":        tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"bs":        tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"ins":       tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
}

// stroke is the comparable identity of a key press.
type stroke struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

// isCtrlLetter reports whether k is one of Ctrl+A through Ctrl+Z.
func isCtrlLetter(k tcell.Key) bool {
	return k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ
}

// strokeOf normalizes an event. Control letters carry their modifier in
// the key code, so their modifier mask is dropped.
func strokeOf(ev *tcell.EventKey) stroke {
	k := ev.Key()
	if k == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		if lower := ev.Rune() | 0x20; lower >= 'a' && lower <= 'z' {
			return stroke{key: tcell.KeyCtrlA + tcell.Key(lower-'a')}
		}
	}
	switch {
	case k == tcell.KeyRune:
		return stroke{key: k, r: ev.Rune(), mods: ev.Modifiers() &^ tcell.ModShift}
	case isCtrlLetter(k):
		return stroke{key: k}
	default:
		return stroke{key: k, mods: ev.Modifiers()}
	}
}

// ParseKey parses a key specification into a tcell key event.
func ParseKey(spec string) (*tcell.EventKey, error) {
	s := strings.TrimSpace(spec)
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) > 2 {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty specification", ErrInvalidKey)
	}

	parts := splitModifiers(s)
	name := parts[len(parts)-1]

	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "control", "c":
			mods |= tcell.ModCtrl
		case "shift", "s":
			mods |= tcell.ModShift
		case "alt", "meta", "a", "m":
			mods |= tcell.ModAlt
		default:
			return nil, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, p, spec)
		}
	}

	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return tcell.NewEventKey(k, 0, mods), nil
	}

	if utf8.RuneCountInString(name) != 1 {
		return nil, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKey, name, spec)
	}
	r, _ := utf8.DecodeRuneInString(name)

	if mods&tcell.ModCtrl != 0 {
		lower := r | 0x20
		if lower < 'a' || lower > 'z' {
			return nil, fmt.Errorf("%w: ctrl requires a letter in %q", ErrInvalidKey, spec)
		}
		k := tcell.KeyCtrlA + tcell.Key(lower-'a')
		return tcell.NewEventKey(k, 0, mods), nil
	}

	return tcell.NewEventKey(tcell.KeyRune, r, mods), nil
}

// splitModifiers splits "Ctrl+Shift+x" or "C-S-x" into its parts while
// keeping a trailing "+" or "-" as the key itself.
func splitModifiers(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if (s[i] == '+' || s[i] == '-') && i > start && i < len(s)-1 {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
