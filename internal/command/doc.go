// Package command implements the Command pattern with invoker-owned undo.
//
// A Command encapsulates an action together with its inverse. Commands are
// bound to triggers on an Invoker, which executes them and records every
// successful execution in a History. The designated Undo trigger pops the
// most recent entry and reverses it.
//
// # Commands
//
// The built-in commands form a closed set of variants identified by Kind:
//   - CopyCommand
//   - CutCommand
//   - PasteCommand
//
// Any type implementing Command can still be bound to a trigger.
//
// # History
//
// History is a LIFO stack of executed, not yet undone commands:
//
//	inv := NewInvoker(NewHistory(), reporter)
//	inv.Bind(TriggerCopy, NewCopy(Argument{}, out))
//
//	inv.Activate(ctx, TriggerCopy) // executes and pushes
//	inv.Activate(ctx, TriggerUndo) // pops and undoes
//
// A command is pushed only after its Execute returned without error, so a
// failed command can never be reached by undo. There is no redo.
//
// # Failure Containment
//
// The Invoker is the only recovery boundary. Errors and panics raised by
// Execute or Undo are reported and carried in the returned Outcome; they
// never escape Activate.
package command
