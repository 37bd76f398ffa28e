// Package viz renders section results in the terminal.
//
//   - [RenderReport]: values, matrices, checks and plots of one result
//   - [Canvas]: Braille pixel canvas used for scattered (x, y) data
//   - [RunBrowser]: interactive section browser built on Bubble Tea
//
// # Key Bindings
//
//	j/k   - Move between sections, or scroll a report
//	Enter - Run the selected section, or open its report
//	r     - Run the selected section again
//	Esc   - Back to the section list
//	q     - Quit
//
// Plots use asciigraph for series on a uniform grid. Consecutive series
// sharing a grid are overlaid in one chart.
package viz
