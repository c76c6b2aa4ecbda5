// Package errors provides structured, coded errors for vtree.
//
// Every error carries a short code (e.g., "E003") registered with a
// category, a message and a longer explanation. Two kinds of failure use it:
//
//   - Configuration errors raised while building or reconciling a tree
//     (missing create function, view type mismatch, reentrant pass). These
//     are programmer errors and are raised with Fatal, which panics with an
//     *Error. Continuing after one would leave views tagged with the wrong
//     composite key.
//   - Ordinary I/O failures (config files, snapshot archives). These are
//     returned like any other Go error and can be inspected with errors.As.
//
// # Usage
//
//	err := errors.New("E122").
//	    WithDetail("diff.maxRows must not be negative").
//	    WithSuggestion("Use 0 to disable the reload fallback")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E122: Invalid configuration value
//	//
//	//   diff.maxRows must not be negative
//	//
//	//   Hint: Use 0 to disable the reload fallback
package errors
