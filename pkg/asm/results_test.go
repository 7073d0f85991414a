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
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteImage(t *testing.T) {
	var b bytes.Buffer
	err := WriteImage(&b, []Record{{0, 0x60443000}, {0x100, 0xf8000000}})
	require.NoError(t, err)
	assert.Equal(t, "orange image v1\n00000000 60443000\n00000100 f8000000\n", b.String())
}

func TestResultsFile(t *testing.T) {
	records := assemble(t, "start: ldr r1, data\n.org 64\ndata: stop\n")
	path := filepath.Join(t.TempDir(), "prog.bin")
	require.NoError(t, WriteResults(path, records))

	back, err := ReadResults(path)
	require.NoError(t, err)
	assert.Equal(t, records, back)
}

func TestReadImageTolerance(t *testing.T) {
	text := "\n  orange image v1\n\n00000000 60443000\r\n   00000004   f8000000  \n\n"
	records, err := ReadImage(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []Record{{0, 0x60443000}, {4, 0xf8000000}}, records)
}

func TestReadImageFail(t *testing.T) {
	invalid := []string{
		"",
		"\n\n",
		"00000000 60443000\n",
		"orange image v2\n",
		"orange image v1\n00000000\n",
		"orange image v1\n00000000 60443000 1\n",
		"orange image v1\n0 60443000\n",
		"orange image v1\n00000000 6044300g\n",
		"orange image v1\n+0000000 60443000\n",
	}
	for _, text := range invalid {
		_, err := ReadImage(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrImage, "[%q]", text)
	}
}

func TestWriteSymbols(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteSymbols(&b, SymbolTable{"loop": 8, "data": 0x40}))
	expected := "SYMBOL           VALUE\n" +
		"data             0x00000040\n" +
		"loop             0x00000008\n"
	assert.Equal(t, expected, b.String())
}
