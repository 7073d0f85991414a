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
	"math"
	"strings"
)

// Directives change the location counter instead of producing a word.
// Each one is a builtin bound to an action that interprets its value.

type directiveAction func(value string) (Advance, error)

type directive struct {
	dName   string
	dAction directiveAction
}

func newDirective(name string, action directiveAction) *directive {
	return &directive{name, action}
}

func (d *directive) name() string {
	return d.dName
}

func (d *directive) action() directiveAction {
	return d.dAction
}

// Bytes reserved per unit of .dw. Kept as the source format defines it.
const dwUnitBytes = 32

// action func for the .org builtin. Set the location counter.
func actionOrg(value string) (Advance, error) {
	addr, err := parseUnsigned(value)
	if err != nil {
		return Advance{}, err
	}
	if addr > math.MaxUint32 {
		return Advance{}, fmt.Errorf("address %d out of range", addr)
	}
	return AbsoluteAdvance(addr), nil
}

// action func for the .dw builtin. Reserve storage.
func actionDw(value string) (Advance, error) {
	n, err := parseUnsigned(value)
	if err != nil {
		return Advance{}, err
	}
	if n > math.MaxUint32/dwUnitBytes {
		return Advance{}, fmt.Errorf("count %d out of range", n)
	}
	return RelativeAdvance(dwUnitBytes * n), nil
}

var builtinOrg *directive = newDirective(".org", actionOrg)
var builtinDw *directive = newDirective(".dw", actionDw)

var builtins = make(map[string]*directive)

func registerBuiltins() {
	builtins[builtinOrg.name()] = builtinOrg
	builtins[builtinDw.name()] = builtinDw
}

func init() {
	registerBuiltins()
}

// Parse a directive line: keyword, one blank, value. Returns the
// keyword as registered and the advance the directive asks for.
func parseDirective(text string) (string, Advance, error) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return "", Advance{}, fmt.Errorf("%w: %q: no value", ErrDirective, text)
	}
	keyword := strings.ToLower(text[:i])
	value := strings.TrimSpace(text[i+1:])
	d, ok := builtins[keyword]
	if !ok {
		return "", Advance{}, fmt.Errorf("%w: %q: unknown directive", ErrDirective, text[:i])
	}
	adv, err := d.action()(value)
	if err != nil {
		return "", Advance{}, fmt.Errorf("%w: %s: %v", ErrDirective, d.name(), err)
	}
	return d.name(), adv, nil
}
