/*
Copyright © 2022 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/


package asm

import (
	"errors"
	"fmt"
)

// Causes of assembly failure. Errors returned by this package wrap one
// of these, so callers can test with errors.Is.
var (
	ErrOpcodeNotFound  = errors.New("opcode not found")
	ErrRegister        = errors.New("invalid register")
	ErrConstant        = errors.New("invalid constant")
	ErrOperandCount    = errors.New("wrong number of operands")
	ErrDirective       = errors.New("could not interpret directive")
	ErrLabel           = errors.New("invalid label")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrUndefinedSymbol = errors.New("undefined symbol")
	ErrCounterOverflow = errors.New("location counter overflow")
	ErrImage           = errors.New("malformed image")
)

// LineError reports a failure tied to one line of source.
type LineError struct {
	Name   string // source unit name
	Line   int    // 1-based
	Source string // raw text of the line
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Name, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
