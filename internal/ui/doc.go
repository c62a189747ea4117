// Package ui contains the Bubble Tea program that edits the outline.
// The Model type focuses on message orchestration while dedicated helpers own
// navigation, forms, rendering and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses go to the active form (label edit or search) when one is
//     open. Otherwise messages are routed through a typed handler registry so
//     each tea.Msg is handled by a focused function.
//   - Handlers call tree.Engine operations directly. The engine notifies its
//     listeners synchronously; the dispatcher collects those notifications and
//     finishUpdate rebuilds the visible rows once per update.
//
// State ownership:
//   - The outline itself lives in tree.Engine, which is the only writer of
//     nodes, the active node and the dirty flag.
//   - internal/ui/state.Outline holds the flattened visible rows, the cursor
//     and the viewport. The cursor follows the engine's active node.
//   - Clipboard and export work runs through the internal/ui/command bus so
//     it happens off the UI goroutine.
//
// Backend interactions:
//   - A backend.Watcher reports writes to the store file made by other
//     processes. A clean outline reloads immediately; with unsaved edits the
//     header flags the change and ctrl+r reloads.
package ui
