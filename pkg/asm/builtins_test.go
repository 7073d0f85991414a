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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	assert.Len(t, builtins, 2)
	assert.Equal(t, builtinOrg, builtins[".org"])
	assert.Equal(t, builtinDw, builtins[".dw"])
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		adv     Advance
	}{
		{".org 0", ".org", AbsoluteAdvance(0)},
		{".org 100", ".org", AbsoluteAdvance(100)},
		{".ORG\t4096", ".org", AbsoluteAdvance(4096)},
		{".org 4294967295", ".org", AbsoluteAdvance(4294967295)},
		{".dw 0", ".dw", RelativeAdvance(0)},
		{".dw 10", ".dw", RelativeAdvance(320)},
		{".dw   1  ", ".dw", RelativeAdvance(32)},
		{".dw 134217727", ".dw", RelativeAdvance(32 * 134217727)},
	}
	for _, tc := range tests {
		kw, adv, err := parseDirective(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.keyword, kw, tc.text)
		assert.Equal(t, tc.adv, adv, tc.text)
	}
}

func TestDirectivesFail(t *testing.T) {
	invalid := []string{
		".org",
		".word 4",
		".org -4",
		".org 0x10",
		".org label",
		".org 4294967296",
		".dw 134217728",
		".dw",
		".dw 1 2",
		"1.5",
	}
	for _, text := range invalid {
		_, _, err := parseDirective(text)
		assert.ErrorIs(t, err, ErrDirective, "[%s]", text)
	}
}
