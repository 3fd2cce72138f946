// Package logs reads the narrator log file for `narrator logs`.
//
// Last returns the trailing lines with bounded memory, Since reads forward
// from a byte offset, and Follow polls for appended lines until its context
// is cancelled. A missing file is treated as empty so the command works
// before the first conversion has logged anything.
package logs
