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

// An operandParser turns the operand text of one instruction into its
// operand set. There is one for each format.
type operandParser func(op isa.Opcode, text string) (OperandSet, error)

var operandParsers = [...]operandParser{
	isa.FormatNone:   parseNone,
	isa.FormatRaRbRc: parseRaRbRc,
	isa.FormatRaRbC2: parseRaRbC2,
	isa.FormatRaC2Rb: parseRaC2Rb,
	isa.FormatRaC1:   parseRaC1,
	isa.FormatRaRc:   parseRaRc,
	isa.FormatBranch: parseBranch,
	isa.FormatShift:  parseShift,
}

func parseOperands(op isa.Opcode, text string) (OperandSet, error) {
	if int(op.Format) >= len(operandParsers) {
		return OperandSet{}, fmt.Errorf("internal error: %s: no parser for format %v", op, op.Format)
	}
	return operandParsers[op.Format](op, text)
}

// Parse each token as a register.
func parseRegisters(toks ...string) ([]Register, error) {
	regs := make([]Register, len(toks))
	for i, tok := range toks {
		n, err := parseRegister(tok)
		if err != nil {
			return nil, err
		}
		regs[i] = R(n)
	}
	return regs, nil
}

// op
func parseNone(op isa.Opcode, text string) (OperandSet, error) {
	if strings.TrimSpace(text) != "" {
		return OperandSet{}, fmt.Errorf("%w: %s takes no operands, found %q",
			ErrOperandCount, op, strings.TrimSpace(text))
	}
	return OperandSet{}, nil
}

// op ra, rb, rc
func parseRaRbRc(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 3)
	if err != nil {
		return OperandSet{}, err
	}
	regs, err := parseRegisters(f[0], f[1], f[2])
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Ra: regs[0], Rb: regs[1], Rc: regs[2]}, nil
}

// op ra, rb, c2
func parseRaRbC2(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 3)
	if err != nil {
		return OperandSet{}, err
	}
	regs, err := parseRegisters(f[0], f[1])
	if err != nil {
		return OperandSet{}, err
	}
	c2, err := parseConstant(f[2])
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Ra: regs[0], Rb: regs[1], C2: c2}, nil
}

// op ra, c2(rb) or op ra, c2 with rb defaulting to r0. The parenthesized
// form is recognized only if "(" comes before ")".
func parseRaC2Rb(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 2)
	if err != nil {
		return OperandSet{}, err
	}
	disp, base := f[1], "r0"
	lp, rp := strings.IndexByte(disp, '('), strings.IndexByte(disp, ')')
	if lp >= 0 && rp >= 0 && lp < rp {
		if trailing := strings.TrimSpace(disp[rp+1:]); trailing != "" {
			return OperandSet{}, fmt.Errorf("%w: unexpected %q after %q",
				ErrOperandCount, trailing, disp[:rp+1])
		}
		disp, base = disp[:lp], disp[lp+1:rp]
	}
	regs, err := parseRegisters(f[0], base)
	if err != nil {
		return OperandSet{}, err
	}
	c2, err := parseConstant(disp)
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Ra: regs[0], Rb: regs[1], C2: c2}, nil
}

// op ra, c1
func parseRaC1(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 2)
	if err != nil {
		return OperandSet{}, err
	}
	ra, err := parseRegister(f[0])
	if err != nil {
		return OperandSet{}, err
	}
	c1, err := parseConstant(f[1])
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Ra: R(ra), C1: c1}, nil
}

// op ra, rc
func parseRaRc(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 2)
	if err != nil {
		return OperandSet{}, err
	}
	regs, err := parseRegisters(f[0], f[1])
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Ra: regs[0], Rc: regs[1]}, nil
}

// The branch family. BR takes the target register only, BRNV takes
// nothing, the conditional forms take target and condition registers.
// The condition code goes in c3.
func parseBranch(op isa.Opcode, text string) (OperandSet, error) {
	var rb, rc string
	switch op.Condition {
	case isa.CondNever:
		if _, err := parseNone(op, text); err != nil {
			return OperandSet{}, err
		}
		rb, rc = "r0", "r0"
	case isa.CondAlways:
		f, err := splitOperands(text, 1)
		if err != nil {
			return OperandSet{}, err
		}
		rb, rc = f[0], "r0"
	default:
		f, err := splitOperands(text, 2)
		if err != nil {
			return OperandSet{}, err
		}
		rb, rc = f[0], f[1]
	}
	regs, err := parseRegisters(rb, rc)
	if err != nil {
		return OperandSet{}, err
	}
	return OperandSet{Rb: regs[0], Rc: regs[1], C3: Literal(uint64(op.Condition))}, nil
}

// op ra, rb, rc or op ra, rb, count. The third operand is taken as a
// register if it is one, otherwise as a literal shift count.
func parseShift(op isa.Opcode, text string) (OperandSet, error) {
	f, err := splitOperands(text, 3)
	if err != nil {
		return OperandSet{}, err
	}
	regs, err := parseRegisters(f[0], f[1])
	if err != nil {
		return OperandSet{}, err
	}
	result := OperandSet{Ra: regs[0], Rb: regs[1]}
	if rc, err := parseRegister(f[2]); err == nil {
		result.Rc, result.C3 = R(rc), Literal(0)
		return result, nil
	}
	count, err := parseLiteral(f[2])
	if err != nil {
		return OperandSet{}, fmt.Errorf("%w: %q is neither a register nor a shift count",
			ErrConstant, f[2])
	}
	result.Rc, result.C3 = R(0), count
	return result, nil
}
