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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willthamic/orange-assembler/pkg/asm"
)

var (
	asmOutput  string
	asmSymbols bool
	asmDump    bool
)

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "The SRC assembler",
	Long: `Asm assembles one source file into a load image.

Each source line holds at most one instruction or directive, optionally
preceded by a label and followed by a ; comment. Labels may be used
before they are defined. The directives are .org n, which moves the
location counter to address n, and .dw n, which reserves n units of
storage.

The image is written next to the source with the extension replaced by
.bin, unless -o names another file. The first error stops the assembly
and no image is written.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assemble(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)

	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "image file (default: source with .bin extension)")
	asmCmd.Flags().BoolVar(&asmSymbols, "symbols", false, "list the symbol table (default: on if stdout is a terminal)")
	asmCmd.Flags().BoolVar(&asmDump, "dump", false, "pretty-print the addressed lines to stderr")
}

func assemble(cmd *cobra.Command, src string) error {
	source, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	prog, err := asm.NewProgram(src, string(source))
	if err != nil {
		return err
	}
	records, err := prog.Records()
	if err != nil {
		return err
	}
	if asmDump {
		dump(cmd.ErrOrStderr(), prog, isTerminal(os.Stderr))
	}

	out := asmOutput
	if out == "" {
		out = outputPath(src)
	}
	if err := asm.WriteResults(out, records); err != nil {
		return err
	}

	listing := asmSymbols
	if !cmd.Flags().Changed("symbols") {
		listing = isTerminal(os.Stdout)
	}
	if listing {
		if err := asm.WriteSymbols(cmd.OutOrStdout(), prog.Symbols()); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully assembled to %s\n", out)
	return nil
}

// The image goes next to the source: prog.s becomes prog.bin. A source
// with no extension gets one appended.
func outputPath(src string) string {
	ext := filepath.Ext(src)
	if ext == ".bin" {
		return src + ".bin"
	}
	return strings.TrimSuffix(src, ext) + ".bin"
}

func dump(w io.Writer, prog *asm.Program, color bool) {
	printer := pp.New()
	printer.SetColoringEnabled(color)
	printer.SetOutput(w)
	printer.Println(prog.Lines())
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
