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
	"fmt"
	"strings"

	"github.com/willthamic/orange-assembler/pkg/isa"
)

// Line syntax:
//
//	[label:] [mnemonic operand, operand, ...] [; comment]
//	[label:] .directive value [; comment]
//
// The comment starts at the first semicolon and the label ends at the
// first colon before it. Whatever remains is a directive if it contains
// a dot anywhere, otherwise an instruction, or nothing.

const (
	commentChar = ';'
	labelChar   = ':'
	dotChar     = '.'
)

// ParseLine parses one line of source. The number is the 1-based line
// number, kept for error reporting.
func ParseLine(raw string, number int) (*SourceLine, error) {
	sl := &SourceLine{Raw: raw, Number: number}
	text := strings.TrimSpace(raw)

	if i := strings.IndexByte(text, commentChar); i >= 0 {
		sl.Comment = strings.TrimSpace(text[i+1:])
		text = strings.TrimSpace(text[:i])
	}

	if i := strings.IndexByte(text, labelChar); i >= 0 {
		sl.Label = strings.TrimSpace(text[:i])
		text = strings.TrimSpace(text[i+1:])
		if sl.Label == "" {
			return nil, fmt.Errorf("%w: empty label", ErrLabel)
		}
	}

	switch {
	case strings.IndexByte(text, dotChar) >= 0:
		kw, adv, err := parseDirective(text)
		if err != nil {
			return nil, err
		}
		sl.Directive, sl.Advance = kw, adv
	case text != "":
		inst, err := parseInstruction(text)
		if err != nil {
			return nil, err
		}
		sl.Inst, sl.Advance = inst, RelativeAdvance(isa.WordBytes)
	default:
		sl.Advance = RelativeAdvance(0)
	}
	return sl, nil
}

// Split the text at the first blank into mnemonic and operands.
func splitMnemonic(text string) (string, string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], text[i+1:]
}

func parseInstruction(text string) (*Instruction, error) {
	mnemonic, operands := splitMnemonic(text)
	op, ok := isa.Lookup(mnemonic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOpcodeNotFound, mnemonic)
	}
	set, err := parseOperands(op, operands)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Instruction{Op: op, Operands: set}, nil
}
