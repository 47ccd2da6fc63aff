package core

import "fmt"

// The simulator never recovers from a fatal condition locally; every error
// type below names the failing component and the failing entity (a gid, a
// mechanism name, or a pair of connection endpoints) so the caller can print
// a diagnostic and abort, per the propagation policy of the error handling
// design. None of these are meant to be retried.

// UsageError reports an invalid configuration, caught at startup before any
// model is constructed.
type UsageError struct {
	Option string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s: %s", e.Option, e.Reason)
}

// ModelError reports a malformed recipe or a parameter outside its declared
// range, caught at model construction.
type ModelError struct {
	GID    CellGID
	Reason string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error: gid %d: %s", e.GID, e.Reason)
}

// NumericalError reports a NaN/Inf in a matrix solve's right-hand side or a
// mechanism state divergence. There is no recovery path.
type NumericalError struct {
	Component string
	Reason    string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error: %s: %s", e.Component, e.Reason)
}

// CommError reports a failed or mismatched collective call.
type CommError struct {
	Op     string
	Reason string
}

func (e *CommError) Error() string {
	return fmt.Sprintf("communication error: %s: %s", e.Op, e.Reason)
}

// IOError reports a failure to open or write a required file, typically
// caught as a pre-flight check before the simulation starts.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
