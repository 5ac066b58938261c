package command

import (
	"fmt"
	"strings"
)

// Trigger identifies an external stimulus bound to a command.
type Trigger string

// Built-in triggers.
const (
	TriggerCopy  Trigger = "Copy"
	TriggerCut   Trigger = "Cut"
	TriggerPaste Trigger = "Paste"

	// TriggerUndo is reserved: it pops the history instead of running a
	// bound command.
	TriggerUndo Trigger = "Undo"
)

// Triggers returns the built-in triggers in display order.
func Triggers() []Trigger {
	return []Trigger{TriggerCopy, TriggerCut, TriggerPaste, TriggerUndo}
}

// String returns the trigger name.
func (t Trigger) String() string {
	return string(t)
}

// IsUndo returns true for the undo trigger.
func (t Trigger) IsUndo() bool {
	return t == TriggerUndo
}

// ParseTrigger parses a built-in trigger name, ignoring case.
func ParseTrigger(s string) (Trigger, error) {
	name := strings.TrimSpace(s)
	for _, t := range Triggers() {
		if strings.EqualFold(name, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTrigger, s)
}
