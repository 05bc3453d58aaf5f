// Package viz draws scenarios in the terminal.
//
//   - [Canvas]: Braille pixel canvas, 2x4 dots per cell
//   - [Projection]: maps world metres onto canvas dots, y up
//   - styles shared by the CLI summary and the live view
package viz
