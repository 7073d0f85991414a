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
	"github.com/willthamic/orange-assembler/pkg/isa"
)

const (
	c1Modulus = 1 << isa.C1Bits
	c2Modulus = 1 << isa.C2Bits
	c3Modulus = 1 << isa.C3Bits
)

// Encode produces the machine word for inst located at address pc.
//
// c1 is PC relative: the field holds the distance from the address of
// the next instruction to the value, modulo 2^22. c2 and c3 are taken
// as they are, reduced to 17 and 12 bits. All arithmetic is unsigned and
// wraps, so negative literals and backward references come out as two's
// complement in the field.
func Encode(inst *Instruction, symbols SymbolTable, pc uint32) (uint32, error) {
	o := &inst.Operands

	c1, err := o.C1.resolve(symbols)
	if err != nil {
		return 0, err
	}
	if o.C1.Present() {
		c1 = (c1 + c1Modulus - isa.WordBytes - uint64(pc)) % c1Modulus
	}
	c2, err := o.C2.resolve(symbols)
	if err != nil {
		return 0, err
	}
	c2 %= c2Modulus
	c3, err := o.C3.resolve(symbols)
	if err != nil {
		return 0, err
	}
	c3 %= c3Modulus

	word := inst.Op.Code<<isa.OpcodeShift +
		o.Ra.Index()<<isa.RaShift +
		o.Rb.Index()<<isa.RbShift +
		o.Rc.Index()<<isa.RcShift +
		uint32(c1+c2+c3)
	return word, nil
}

// EncodeLine encodes the instruction on a line, if there is one. The
// second result is false for lines that produce no word.
func EncodeLine(sl *SourceLine, symbols SymbolTable, pc uint32) (uint32, bool, error) {
	if !sl.HasInstruction() {
		return 0, false, nil
	}
	word, err := Encode(sl.Inst, symbols, pc)
	if err != nil {
		return 0, false, err
	}
	return word, true, nil
}
