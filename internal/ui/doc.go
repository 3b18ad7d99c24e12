// Package ui is the terminal front end of the on-screen keyboard, built on
// Bubble Tea.
//
// Core pieces:
//   - View: a screen region with its own model, update and view (Elm-style)
//   - FieldView: an editable text field the keyboard can write into
//   - RemoteView: a tmux pane or PTY process the keyboard types into
//   - KeyboardView: the key grid and the family selector row
//   - FocusManager: rotates focus across fields, remotes and the keyboard;
//     focusing a target activates it on the keyboard
//   - KeyHandler: leader-key (ctrl+k) command bindings
//   - OverlayStack: popups such as the help screen
//
// All keyboard state is touched only from the Bubble Tea update loop.
// Other goroutines reach it through ProgramDispatcher or by sending
// messages to the program.
package ui
