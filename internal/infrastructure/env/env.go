// Package env carries the process-wide collaborators (logger, abort hook)
// that loaders and simulation drivers need, so they never reach for globals.
package env

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Context is passed into MapLoader, Classifier and CollisionDriver constructors.
type Context struct {
	Log *log.Logger

	// Fatalf reports an unrecoverable load error. The default aborts the process.
	Fatalf func(format string, args ...any)

	// Verbose enables per-level diagnostics (classified cells, box counts by pass).
	Verbose bool
}

// Default returns a context logging to stderr that aborts on fatal errors
func Default() *Context {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	return &Context{
		Log:    logger,
		Fatalf: logger.Fatalf,
	}
}

// Discard returns a context that drops all log output.
// Fatal errors still abort the process.
func Discard() *Context {
	logger := log.New(io.Discard, "", 0)
	return &Context{
		Log:    logger,
		Fatalf: logger.Fatalf,
	}
}

// Printf logs through the context logger
func (c *Context) Printf(format string, args ...any) {
	if c == nil || c.Log == nil {
		return
	}
	c.Log.Printf(format, args...)
}

// Debugf logs only when Verbose is set
func (c *Context) Debugf(format string, args ...any) {
	if c == nil || !c.Verbose {
		return
	}
	c.Printf(format, args...)
}

// Abort formats the message and hands it to Fatalf
func (c *Context) Abort(format string, args ...any) {
	if c == nil || c.Fatalf == nil {
		log.Fatalf(format, args...)
		return
	}
	c.Fatalf(format, args...)
}

// Recorder captures fatal messages instead of exiting. Tests install it with Capture.
type Recorder struct {
	Messages []string
}

// Capture returns a quiet context whose Fatalf appends to the returned recorder
func Capture() (*Context, *Recorder) {
	rec := &Recorder{}
	ctx := &Context{
		Log: log.New(io.Discard, "", 0),
		Fatalf: func(format string, args ...any) {
			rec.Messages = append(rec.Messages, fmt.Sprintf(format, args...))
		},
	}
	return ctx, rec
}

// Failed reports whether any fatal message was captured
func (r *Recorder) Failed() bool {
	return len(r.Messages) > 0
}
