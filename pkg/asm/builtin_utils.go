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
	"strconv"
	"strings"
	"unicode"

	"github.com/willthamic/orange-assembler/pkg/isa"
)

// Split s into exactly n comma separated operands, trimmed. Each field
// ends at the first comma, so the last field may not contain one.
func splitOperands(s string, n int) ([]string, error) {
	result := make([]string, 0, n)
	for i := 0; i < n-1; i++ {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: expected %d, found %d", ErrOperandCount, n, i+1)
		}
		result = append(result, strings.TrimSpace(s[:comma]))
		s = s[comma+1:]
	}
	if strings.IndexByte(s, ',') >= 0 {
		return nil, fmt.Errorf("%w: expected %d, found more", ErrOperandCount, n)
	}
	return append(result, strings.TrimSpace(s)), nil
}

// A register is r0 through r31: the letter r and one or two digits.
func parseRegister(tok string) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if len(tok) < 2 || len(tok) > 3 || tok[0] != 'r' || !isDecimal(tok[1:]) {
		return 0, fmt.Errorf("%w: %q", ErrRegister, tok)
	}
	n, _ := strconv.ParseUint(tok[1:], 10, 8)
	if n >= isa.NumRegisters {
		return 0, fmt.Errorf("%w: %q out of range", ErrRegister, tok)
	}
	return uint32(n), nil
}

// A constant is a decimal number, optionally negative, or a symbol.
// Negative numbers are two's complemented at 64 bits here and reduced
// to the field width only when the instruction is encoded. A run of
// digits too long for 64 bits is not a number, so it is taken as a
// symbol like any other alphanumeric token.
func parseConstant(tok string) (Constant, error) {
	tok = strings.TrimSpace(tok)
	digits := strings.TrimPrefix(tok, "-")
	if isDecimal(digits) {
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil && len(digits) == len(tok) {
			return SymbolRef(tok), nil
		}
		if err != nil {
			return Constant{}, fmt.Errorf("%w: %q out of range", ErrConstant, tok)
		}
		if len(digits) != len(tok) {
			n = ^n + 1
		}
		return Literal(n), nil
	}
	if isSymbolName(tok) {
		return SymbolRef(tok), nil
	}
	return Constant{}, fmt.Errorf("%w: %q", ErrConstant, tok)
}

// Like parseConstant, but symbols are not accepted.
func parseLiteral(tok string) (Constant, error) {
	c, err := parseConstant(tok)
	if err != nil {
		return c, err
	}
	if c.IsSymbol() {
		return Constant{}, fmt.Errorf("%w: %q: literal expected", ErrConstant, c.Symbol())
	}
	return c, nil
}

// Parse a directive value: an unsigned decimal number.
func parseUnsigned(tok string) (uint64, error) {
	if !isDecimal(tok) {
		return 0, fmt.Errorf("%q: decimal number expected", tok)
	}
	return strconv.ParseUint(tok, 10, 64)
}

func isDecimal(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Symbols and labels start with a letter and contain only letters
// and digits.
func isSymbolName(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
