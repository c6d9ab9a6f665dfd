/*
Package errors implements the error handling used across the swap registry.

The idea is to reuse as many root errors from this package as possible and
define custom errors only when absolutely necessary. Use Register(code,
description) to declare a new root error. Every code can be registered only
once.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure so that a stacktrace is attached. If you wrap multiple times, only
the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

To test the kind of an error use the Is method of the root error

	if errors.ErrNotFound.Is(err) {
		// ...
	}
*/
package errors
