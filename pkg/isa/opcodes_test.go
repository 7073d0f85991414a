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


package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIgnoresCase(t *testing.T) {
	for _, name := range []string{"add", "ADD", "Add", "aDd"} {
		op, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "ADD", op.Mnemonic)
		assert.Equal(t, uint32(12), op.Code)
		assert.Equal(t, FormatRaRbRc, op.Format)
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "MOV", "ADDX", ".org", "br r1"} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestOpcodeTable(t *testing.T) {
	tests := []struct {
		name   string
		code   uint32
		format Format
		cond   uint32
	}{
		{"NOP", 0, FormatNone, 0},
		{"STOP", 31, FormatNone, 0},
		{"ADD", 12, FormatRaRbRc, 0},
		{"SUB", 14, FormatRaRbRc, 0},
		{"AND", 20, FormatRaRbRc, 0},
		{"OR", 22, FormatRaRbRc, 0},
		{"ADDI", 13, FormatRaRbC2, 0},
		{"ANDI", 21, FormatRaRbC2, 0},
		{"ORI", 23, FormatRaRbC2, 0},
		{"LD", 1, FormatRaC2Rb, 0},
		{"ST", 3, FormatRaC2Rb, 0},
		{"LA", 5, FormatRaC2Rb, 0},
		{"LDR", 2, FormatRaC1, 0},
		{"STR", 4, FormatRaC1, 0},
		{"LAR", 6, FormatRaC1, 0},
		{"NEG", 15, FormatRaRc, 0},
		{"NOT", 24, FormatRaRc, 0},
		{"BRNV", 8, FormatBranch, 0},
		{"BR", 8, FormatBranch, 1},
		{"BRZR", 8, FormatBranch, 2},
		{"BRNZ", 8, FormatBranch, 3},
		{"BRPL", 8, FormatBranch, 4},
		{"BRMI", 8, FormatBranch, 5},
		{"SHR", 26, FormatShift, 0},
		{"SHRA", 27, FormatShift, 0},
		{"SHL", 28, FormatShift, 0},
		{"SHC", 29, FormatShift, 0},
	}
	assert.Equal(t, len(tests), len(Mnemonics()))
	for _, tc := range tests {
		op, ok := Lookup(tc.name)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.code, op.Code, tc.name)
		assert.Equal(t, tc.format, op.Format, tc.name)
		assert.Equal(t, tc.cond, op.Condition, tc.name)
		assert.Less(t, op.Code, uint32(1)<<5, tc.name)
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ra,c2(rb)", FormatRaC2Rb.String())
	assert.Equal(t, "Format(42)", Format(42).String())
}
