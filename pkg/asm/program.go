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

// Package asm is a two-pass assembler for the SRC instruction set.
//
// The first pass parses every line and walks them in order with a
// location counter, giving each line an address and recording labels.
// The second pass encodes each instruction against the finished symbol
// table, so a label may be referenced before the line that defines it.
// The output is a list of (address, word) records, rendered as a text
// image by WriteImage.
package asm

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/glog"
)

// AddressedLine is a source line with the address the scan pass gave it.
type AddressedLine struct {
	Address uint32
	Line    *SourceLine
}

// Record is one output word and the address it is loaded at.
type Record struct {
	Address uint32
	Word    uint32
}

func (r Record) String() string {
	return fmt.Sprintf("%08x %08x", r.Address, r.Word)
}

// Program is one assembled source unit. NewProgram parses the source and
// runs the scan pass, which assigns addresses and builds the symbol
// table. The encode pass runs only on request, against the completed
// table, so labels may be used before they are defined.
type Program struct {
	Name    string
	lines   []AddressedLine
	symbols SymbolTable
}

// NewProgram parses source and assigns an address to every line. The
// first error ends the assembly and no Program is returned.
func NewProgram(name string, source string) (*Program, error) {
	lines, err := parseSource(name, source)
	if err != nil {
		return nil, err
	}
	p := &Program{Name: name, symbols: newSymbolTable()}
	if err := p.scan(lines); err != nil {
		return nil, err
	}
	return p, nil
}

func parseSource(name string, source string) ([]*SourceLine, error) {
	raw := strings.Split(source, "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	result := make([]*SourceLine, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		sl, err := ParseLine(text, i+1)
		if err != nil {
			return nil, &LineError{name, i + 1, text, err}
		}
		result = append(result, sl)
	}
	return result, nil
}

// Pass 1. The location counter is local to this pass.
func (p *Program) scan(lines []*SourceLine) error {
	glog.V(1).Infof("%s: beginning pass 1, %d lines", p.Name, len(lines))
	var counter uint64
	p.lines = make([]AddressedLine, 0, len(lines))
	for _, sl := range lines {
		if counter > math.MaxUint32 {
			return &LineError{p.Name, sl.Number, sl.Raw,
				fmt.Errorf("%w: 0x%x", ErrCounterOverflow, counter)}
		}
		addr := uint32(counter)
		p.lines = append(p.lines, AddressedLine{addr, sl})
		if sl.Label != "" {
			if err := p.symbols.define(sl.Label, addr); err != nil {
				return &LineError{p.Name, sl.Number, sl.Raw, err}
			}
			glog.V(2).Infof("%s:%d: define %s = 0x%08x", p.Name, sl.Number, sl.Label, addr)
		}
		counter = sl.Advance.apply(counter)
	}
	glog.V(1).Infof("%s: pass 1 done, %d symbols", p.Name, len(p.symbols))
	return nil
}

// Records runs the encode pass (pass 2) and returns one record per
// instruction, in source order.
func (p *Program) Records() ([]Record, error) {
	glog.V(1).Infof("%s: beginning pass 2", p.Name)
	var records []Record
	for _, al := range p.lines {
		word, ok, err := EncodeLine(al.Line, p.symbols, al.Address)
		if err != nil {
			return nil, &LineError{p.Name, al.Line.Number, al.Line.Raw, err}
		}
		if !ok {
			continue
		}
		glog.V(2).Infof("%s:%d: 0x%08x: 0x%08x %s", p.Name, al.Line.Number, al.Address, word, al.Line.Inst)
		records = append(records, Record{al.Address, word})
	}
	glog.V(1).Infof("%s: pass 2 done, %d words", p.Name, len(records))
	return records, nil
}

// Encode runs the encode pass and renders the image as text.
func (p *Program) Encode() (string, error) {
	records, err := p.Records()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := WriteImage(&b, records); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Lines returns the addressed lines in source order.
func (p *Program) Lines() []AddressedLine {
	result := make([]AddressedLine, len(p.lines))
	copy(result, p.lines)
	return result
}

// Symbols returns a copy of the symbol table.
func (p *Program) Symbols() SymbolTable {
	st := newSymbolTable()
	for n, a := range p.symbols {
		st[n] = a
	}
	return st
}
