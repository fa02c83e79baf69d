// Package viz renders the hero scene in the terminal.
//
// The package implements the landing page as a Bubble Tea program:
//
//   - [Model]: the page, with the hero on the left and the widgets panel
//   - [Canvas]: braille pixel canvas with per-cell color
//   - [SceneRenderer]: perspective wireframe renderer for scene objects
//
// # Key Bindings
//
//	Mouse - Tilt the hero toward the pointer
//	Wheel - Scroll the page and reveal sections
//	Tab   - Focus the next field
//	Enter - Submit the contact form or swap the exchange arrow
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
