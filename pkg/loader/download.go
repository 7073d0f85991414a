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


package loader

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"

	"github.com/willthamic/orange-assembler/pkg/asm"
)

// Download synchronizes with the board, writes every record to target
// memory in order, and starts the target at the first record's address.
// An empty image is written as nothing and not started.
func Download(b *Board, records []asm.Record) error {
	if err := establishConnection(b); err != nil {
		return err
	}
	glog.Infof("downloading %d words", len(records))
	for i, r := range records {
		if err := writeWord(b, r); err != nil {
			return fmt.Errorf("record %d (%v): %w", i, r, err)
		}
	}
	if len(records) == 0 {
		glog.Info("empty image, nothing to start")
		return nil
	}
	entry := records[0].Address
	if err := start(b, entry); err != nil {
		return fmt.Errorf("start at 0x%08x: %w", entry, err)
	}
	glog.Infof("download complete, started at 0x%08x", entry)
	return nil
}

func writeWord(b *Board, r asm.Record) error {
	cmd := make([]byte, 9)
	cmd[0] = CmdWriteWord
	binary.BigEndian.PutUint32(cmd[1:5], r.Address)
	binary.BigEndian.PutUint32(cmd[5:9], r.Word)
	_, err := doFixedCommand(b, cmd, 0)
	return err
}

func start(b *Board, addr uint32) error {
	cmd := make([]byte, 5)
	cmd[0] = CmdStart
	binary.BigEndian.PutUint32(cmd[1:5], addr)
	_, err := doFixedCommand(b, cmd, 0)
	return err
}
