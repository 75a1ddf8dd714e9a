// Package pretty renders line-delimited JSON log records as condensed,
// coloured text for interactive development.
//
// Writer sits at the end of the development pipeline. It expects the
// level key to carry the numeric weight and maps it to the display
// code itself. Colour is decided once, from the Color option or, in
// auto mode, by whether the output is a terminal.
//
// The envlog-pretty command wraps the same Writer around stdin so that
// production records can be read by a human.
package pretty
