// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs defines the error taxonomy shared by every package in this
// module, so that callers can branch on the failure category (a malformed
// sketch file vs. a bad parameter vs. an I/O failure) without parsing
// strings.
package errs

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// BadInput marks malformed or unreadable input data (sequence files
	// that cannot be opened or parsed) and calls given unusable input (an
	// empty sketch list to write, a Sketcher that was already finalized).
	BadInput Kind = iota
	// BadConfig marks a parameter combination that cannot be honored,
	// caught at construction time rather than partway through a run.
	BadConfig
	// TooFewKmers marks a sketch that did not reach its target size in
	// strict mode.
	TooFewKmers
	// IncompatibleSketches marks an attempt to compare or combine sketches
	// built with different parameters.
	IncompatibleSketches
	// IoError marks a failure reading or writing a file or stream.
	IoError
	// FormatError marks a sketch file whose framing or field values do not
	// match any recognized format.
	FormatError
)

func (k Kind) String() string {
	switch k {
	case BadInput:
		return "BadInput"
	case BadConfig:
		return "BadConfig"
	case TooFewKmers:
		return "TooFewKmers"
	case IncompatibleSketches:
		return "IncompatibleSketches"
	case IoError:
		return "IoError"
	case FormatError:
		return "FormatError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across package boundaries in
// this module. Callers recover the Kind with errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error carrying an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind == kind
	}
	return false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
