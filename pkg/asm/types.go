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
	"sort"
	"strconv"

	"github.com/willthamic/orange-assembler/pkg/isa"
)

// ---------
// Registers
// ---------

// Register is an optional register operand. The zero value is absent
// and encodes as r0.
type Register struct {
	index   uint32
	present bool
}

// R returns a present register operand.
func R(n uint32) Register {
	return Register{n, true}
}

func (r Register) Index() uint32 {
	return r.index
}

func (r Register) Present() bool {
	return r.present
}

func (r Register) String() string {
	if !r.present {
		return "-"
	}
	return fmt.Sprintf("r%d", r.index)
}

// ---------
// Constants
// ---------

type constKind int

const (
	constAbsent constKind = iota
	constLiteral
	constSymbol
)

// Constant is an optional constant operand: a literal already reduced to
// an unsigned machine value, or the name of a symbol resolved when the
// instruction is encoded.
type Constant struct {
	kind   constKind
	value  uint64
	symbol string
}

// Literal returns a literal constant.
func Literal(v uint64) Constant {
	return Constant{kind: constLiteral, value: v}
}

// SymbolRef returns a constant naming a symbol.
func SymbolRef(name string) Constant {
	return Constant{kind: constSymbol, symbol: name}
}

func (c Constant) Present() bool {
	return c.kind != constAbsent
}

func (c Constant) IsSymbol() bool {
	return c.kind == constSymbol
}

func (c Constant) Symbol() string {
	return c.symbol
}

func (c Constant) Value() uint64 {
	return c.value
}

// resolve returns the value of the constant, looking symbols up in st.
// An absent constant is zero.
func (c Constant) resolve(st SymbolTable) (uint64, error) {
	switch c.kind {
	case constLiteral:
		return c.value, nil
	case constSymbol:
		addr, ok := st.Lookup(c.symbol)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedSymbol, c.symbol)
		}
		return uint64(addr), nil
	}
	return 0, nil
}

func (c Constant) String() string {
	switch c.kind {
	case constLiteral:
		return strconv.FormatUint(c.value, 10)
	case constSymbol:
		return c.symbol
	}
	return "-"
}

// ------------
// Instructions
// ------------

// OperandSet holds the operands of one instruction. Which slots are
// meaningful depends on the opcode's format.
type OperandSet struct {
	Ra, Rb, Rc Register
	C1, C2, C3 Constant
}

// Instruction is a parsed opcode with its operands.
type Instruction struct {
	Op       isa.Opcode
	Operands OperandSet
}

func (inst *Instruction) String() string {
	o := inst.Operands
	return fmt.Sprintf("%s ra=%s rb=%s rc=%s c1=%s c2=%s c3=%s",
		inst.Op, o.Ra, o.Rb, o.Rc, o.C1, o.C2, o.C3)
}

// ---------------
// Address advance
// ---------------

type AdvanceKind int

const (
	Relative AdvanceKind = iota // add N to the location counter
	Absolute                    // set the location counter to N
)

// Advance says how a line moves the location counter once it has been
// assigned its own address.
type Advance struct {
	Kind AdvanceKind
	N    uint64
}

func RelativeAdvance(n uint64) Advance {
	return Advance{Relative, n}
}

func AbsoluteAdvance(addr uint64) Advance {
	return Advance{Absolute, addr}
}

// apply returns the location counter after this advance.
func (a Advance) apply(counter uint64) uint64 {
	if a.Kind == Absolute {
		return a.N
	}
	return counter + a.N
}

func (a Advance) String() string {
	if a.Kind == Absolute {
		return fmt.Sprintf("Absolute(%d)", a.N)
	}
	return fmt.Sprintf("Relative(%d)", a.N)
}

// ------------
// Source lines
// ------------

// SourceLine is one parsed line of source. At most one of Inst and
// Directive is set; a line with neither is empty, or holds only a label
// or a comment.
type SourceLine struct {
	Raw       string
	Number    int
	Label     string // "" if none
	Comment   string
	Directive string // directive keyword, "" if none
	Inst      *Instruction
	Advance   Advance
}

func (l *SourceLine) HasInstruction() bool {
	return l.Inst != nil
}

func (l *SourceLine) IsDirective() bool {
	return l.Directive != ""
}

// ------------
// Symbol table
// ------------

// SymbolTable maps label names to addresses.
type SymbolTable map[string]uint32

func newSymbolTable() SymbolTable {
	st := make(SymbolTable)
	return st
}

// define binds name to addr. A name may be defined only once.
func (st SymbolTable) define(name string, addr uint32) error {
	if prev, ok := st[name]; ok {
		return fmt.Errorf("%w: %s (already at 0x%08x)", ErrDuplicateSymbol, name, prev)
	}
	st[name] = addr
	return nil
}

func (st SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := st[name]
	return addr, ok
}

// Names returns the defined names in sorted order.
func (st SymbolTable) Names() []string {
	names := make([]string, 0, len(st))
	for n := range st {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
