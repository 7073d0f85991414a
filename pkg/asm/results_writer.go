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
	"bufio"
	"fmt"
	"io"
	"os"
)

// ImageHeader is the first line of every image.
const ImageHeader = "orange image v1"

// WriteResults writes the image for records to the named file.
func WriteResults(path string, records []Record) error {
	img, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteImage(img, records); err != nil {
		img.Close()
		return err
	}
	return img.Close()
}

// WriteImage writes the header and then one line per record: address
// and word, eight hex digits each.
func WriteImage(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ImageHeader)
	for _, r := range records {
		fmt.Fprintln(bw, r)
	}
	return bw.Flush()
}

// WriteSymbols lists the symbol table sorted by name.
func WriteSymbols(w io.Writer, st SymbolTable) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-16s %s\n", "SYMBOL", "VALUE")
	for _, n := range st.Names() {
		fmt.Fprintf(bw, "%-16s 0x%08x\n", n, st[n])
	}
	return bw.Flush()
}
