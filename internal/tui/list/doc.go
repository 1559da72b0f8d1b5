// Package listview provides a windowed, keyboard-navigable list for Bubble Tea.
//
// Only the rows inside the viewport are rendered, and the selection is kept
// visible while scrolling. Items can be replaced wholesale with SetItems
// without losing the cursor, which is how the browser re-renders after every
// filter keystroke and every detail load.
package listview
