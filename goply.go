package goply

// Handle is the common surface of reader and writer handles. It is what an
// ErrorHandler receives alongside each message, so a handler shared between
// several handles can tell reports apart.
type Handle interface {
	// Name describes the handle's source or destination: a file path for
	// file-backed handles, "(memory)" for memory-backed ones, "(stream)"
	// for anything else.
	Name() string
}

// ErrorHandler receives a report for every fault raised while driving a
// handle. It is supplied at construction and held for the handle's lifetime.
// Reports are synchronous, on the calling goroutine; a handler must not call
// back into the handle that raised the report.
//
// Implementations typically close over whatever caller context they need,
// so no separate opaque context values are threaded through the API.
type ErrorHandler interface {
	Report(h Handle, message string)
}

// ErrorHandlerFunc adapts a plain function to an ErrorHandler.
type ErrorHandlerFunc func(h Handle, message string)

// Report implements ErrorHandler.
func (f ErrorHandlerFunc) Report(h Handle, message string) {
	f(h, message)
}
