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
	"strconv"
	"strings"
)

// ReadResults reads an image file written by WriteResults.
func ReadResults(path string) ([]Record, error) {
	img, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return ReadImage(bufio.NewReader(img))
}

// ReadImage parses image text. Blank lines are ignored; anything else
// must be the header, then records.
func ReadImage(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	var records []Record
	sawHeader := false
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !sawHeader {
			if text != ImageHeader {
				return nil, fmt.Errorf("%w: line %d: expected header %q", ErrImage, line, ImageHeader)
			}
			sawHeader = true
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrImage, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: empty", ErrImage)
	}
	return records, nil
}

func parseRecord(text string) (Record, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Record{}, fmt.Errorf("%q: expected address and word", text)
	}
	var vals [2]uint32
	for i, f := range fields {
		if len(f) != 8 {
			return Record{}, fmt.Errorf("%q: eight hex digits expected", f)
		}
		n, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			return Record{}, fmt.Errorf("%q: eight hex digits expected", f)
		}
		vals[i] = uint32(n)
	}
	return Record{vals[0], vals[1]}, nil
}
