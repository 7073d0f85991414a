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

// Command bytes. Every command has the high nibble set, so no ack (the
// complement of a command) can be mistaken for a command.
const (
	CmdSync      byte = 0xF0 // no args, no response
	CmdGetVer    byte = 0xF1 // no args, 1 byte response
	CmdWriteWord byte = 0xF2 // 4 byte address, 4 byte word
	CmdStart     byte = 0xF3 // 4 byte address
)

// ProtocolVersion is the version the board must report.
const ProtocolVersion byte = 1

// Ack returns the byte the board sends to accept cmd.
func Ack(cmd byte) byte {
	return ^cmd
}
