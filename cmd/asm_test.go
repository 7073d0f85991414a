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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willthamic/orange-assembler/pkg/asm"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src, expected string
	}{
		{"prog.s", "prog.bin"},
		{"prog.asm", "prog.bin"},
		{"dir/prog.s", "dir/prog.bin"},
		{"prog", "prog.bin"},
		{"dir.d/prog", "dir.d/prog.bin"},
		{"a.b.s", "a.b.bin"},
		{"prog.bin", "prog.bin.bin"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, outputPath(tc.src), tc.src)
	}
}

// Flag values and their Changed marks live in package variables and
// outlive a single Execute, so every run starts from the defaults.
func resetFlags() {
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAsmCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.s")
	require.NoError(t, os.WriteFile(src, []byte("start: add r1,r2,r3\nstop\n"), 0644))

	out, err := runRoot(t, "asm", "--symbols", src)
	require.NoError(t, err)
	img := filepath.Join(dir, "prog.bin")
	assert.Contains(t, out, "start            0x00000000")
	assert.Contains(t, out, "Successfully assembled to "+img)

	text, err := os.ReadFile(img)
	require.NoError(t, err)
	assert.Equal(t, "orange image v1\n00000000 60443000\n00000004 f8000000\n", string(text))

	records, err := asm.ReadResults(img)
	require.NoError(t, err)
	assert.Equal(t, []asm.Record{{Address: 0, Word: 0x60443000}, {Address: 4, Word: 0xf8000000}}, records)
}

func TestAsmCommandOutputFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.s")
	dst := filepath.Join(dir, "other.img")
	require.NoError(t, os.WriteFile(src, []byte("nop\n"), 0644))

	_, err := runRoot(t, "asm", "-o", dst, src)
	require.NoError(t, err)
	assert.FileExists(t, dst)
	assert.NoFileExists(t, filepath.Join(dir, "prog.bin"))
}

func TestAsmCommandErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.s")
	require.NoError(t, os.WriteFile(src, []byte("nop\nmov r1, r2\n"), 0644))

	out, err := runRoot(t, "asm", src)
	assert.ErrorIs(t, err, asm.ErrOpcodeNotFound)
	assert.Contains(t, out, "bad.s:2:")
	assert.NoFileExists(t, filepath.Join(dir, "bad.bin"))

	_, err = runRoot(t, "asm", filepath.Join(dir, "missing.s"))
	assert.Error(t, err)
}

func TestAsmCommandFlagsDoNotLeak(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.s")
	dst := filepath.Join(dir, "first.img")
	require.NoError(t, os.WriteFile(src, []byte("here: nop\n"), 0644))

	out, err := runRoot(t, "asm", "--symbols", "-o", dst, src)
	require.NoError(t, err)
	assert.Contains(t, out, "here ")
	assert.FileExists(t, dst)

	_, err = runRoot(t, "asm", src)
	require.NoError(t, err)
	assert.False(t, asmCmd.Flags().Changed("symbols"))
	assert.False(t, asmSymbols)
	assert.Equal(t, "", asmOutput)
	assert.FileExists(t, filepath.Join(dir, "prog.bin"))
}
