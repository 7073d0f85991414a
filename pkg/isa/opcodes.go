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

// Package isa describes the SRC instruction set: the opcode mnemonics,
// their numeric codes, and the operand format each one is written in.
//
// Every instruction is one 32-bit word. The opcode occupies bits 31..27,
// followed by three 5-bit register fields (ra 26..22, rb 21..17, rc 16..12).
// The low bits carry at most one constant field whose width depends on
// which register fields the format leaves unused.
package isa

import (
	"fmt"
	"sort"
	"strings"
)

// Format is the operand shape an opcode is written in.
type Format int

const (
	FormatNone   Format = iota // op
	FormatRaRbRc               // op ra, rb, rc
	FormatRaRbC2               // op ra, rb, c2
	FormatRaC2Rb               // op ra, c2(rb)
	FormatRaC1                 // op ra, c1
	FormatRaRc                 // op ra, rc
	FormatBranch               // br rb / brnv / brzr rb, rc ...
	FormatShift                // op ra, rb, rc|count
)

var formatToString = []string{
	"none",
	"ra,rb,rc",
	"ra,rb,c2",
	"ra,c2(rb)",
	"ra,c1",
	"ra,rc",
	"branch",
	"shift",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatToString) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatToString[f]
}

// Field geometry of an instruction word.
const (
	OpcodeShift = 27
	RaShift     = 22
	RbShift     = 17
	RcShift     = 12

	C1Bits = 22
	C2Bits = 17
	C3Bits = 12

	NumRegisters = 32
	WordBytes    = 4
)

// Opcode is one mnemonic of the instruction set.
type Opcode struct {
	Mnemonic string
	Code     uint32 // 0..31
	Format   Format
	// Condition is the value placed in the c3 field by the branch
	// family. It is zero for every other format.
	Condition uint32
}

func (op Opcode) String() string {
	return op.Mnemonic
}

// The branch family shares code 8 and is distinguished by condition.
const branchCode = 8

const (
	CondNever   = 0
	CondAlways  = 1
	CondZero    = 2
	CondNonzero = 3
	CondPlus    = 4
	CondMinus   = 5
)

var opcodes = map[string]Opcode{
	"NOP":  {"NOP", 0, FormatNone, 0},
	"STOP": {"STOP", 31, FormatNone, 0},

	"ADD": {"ADD", 12, FormatRaRbRc, 0},
	"SUB": {"SUB", 14, FormatRaRbRc, 0},
	"AND": {"AND", 20, FormatRaRbRc, 0},
	"OR":  {"OR", 22, FormatRaRbRc, 0},

	"ADDI": {"ADDI", 13, FormatRaRbC2, 0},
	"ANDI": {"ANDI", 21, FormatRaRbC2, 0},
	"ORI":  {"ORI", 23, FormatRaRbC2, 0},

	"LD": {"LD", 1, FormatRaC2Rb, 0},
	"ST": {"ST", 3, FormatRaC2Rb, 0},
	"LA": {"LA", 5, FormatRaC2Rb, 0},

	"LDR": {"LDR", 2, FormatRaC1, 0},
	"STR": {"STR", 4, FormatRaC1, 0},
	"LAR": {"LAR", 6, FormatRaC1, 0},

	"NEG": {"NEG", 15, FormatRaRc, 0},
	"NOT": {"NOT", 24, FormatRaRc, 0},

	"BRNV": {"BRNV", branchCode, FormatBranch, CondNever},
	"BR":   {"BR", branchCode, FormatBranch, CondAlways},
	"BRZR": {"BRZR", branchCode, FormatBranch, CondZero},
	"BRNZ": {"BRNZ", branchCode, FormatBranch, CondNonzero},
	"BRPL": {"BRPL", branchCode, FormatBranch, CondPlus},
	"BRMI": {"BRMI", branchCode, FormatBranch, CondMinus},

	"SHR":  {"SHR", 26, FormatShift, 0},
	"SHRA": {"SHRA", 27, FormatShift, 0},
	"SHL":  {"SHL", 28, FormatShift, 0},
	"SHC":  {"SHC", 29, FormatShift, 0},
}

// Lookup finds an opcode by mnemonic, ignoring case.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodes[strings.ToUpper(mnemonic)]
	return op, ok
}

// Mnemonics returns every mnemonic in the table, sorted.
func Mnemonics() []string {
	names := make([]string, 0, len(opcodes))
	for n := range opcodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
