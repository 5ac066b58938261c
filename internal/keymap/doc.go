// Package keymap maps terminal key events to command triggers.
//
// Key specifications can be written in several formats:
//
//   - Modifier forms: "Ctrl+C", "Ctrl-V", "Shift+Insert"
//   - Vim-style: "<C-z>", "<S-Del>"
//   - Plain keys: "a", "Enter", "Esc"
//
// Events are tcell key events, so a terminal front end can forward what it
// polls from its screen directly:
//
//	km := keymap.Default()
//	if t, ok := km.Lookup(ev); ok {
//		inv.Activate(ctx, t)
//	}
package keymap
