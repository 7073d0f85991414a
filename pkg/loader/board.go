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

// Package loader downloads an assembled image to a loader board over a
// serial line.
//
// The board is a small microcontroller sitting between the host and the
// target memory. It speaks a byte-oriented protocol: the host sends a
// command byte and its fixed arguments, and the board answers with the
// complement of the command byte (the ack), followed by a fixed response
// if the command has one. Anything else is a nak. There is exactly one
// command in flight at a time, so the whole conversation runs on the
// calling goroutine; reads are bounded by the serial read timeout.
//
// Opening the port through a USB-serial adapter usually resets the
// board, and it spends the first moments after reset listening for a
// firmware upload. Open waits out that window before returning.
package loader

import (
	"fmt"
	"syscall"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// DefaultResetDelay is how long Open waits for the board to come out of
// reset.
const DefaultResetDelay = 3 * time.Second

// DefaultBaudRate must agree with the board firmware.
const DefaultBaudRate = 115200

// Port is the part of serial.Port the board needs. A Read that times
// out returns zero bytes and no error.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Board is an open connection to a loader board.
type Board struct {
	port Port
}

type NoResponseError time.Duration

func (nre NoResponseError) Error() string {
	return fmt.Sprintf("read from board: no response after %v", time.Duration(nre))
}

// Open opens the serial device, 8N1 at the given rate, and waits
// resetDelay for the board to reset.
func Open(deviceName string, baudRate int, resetDelay time.Duration) (*Board, error) {
	mode := &serial.Mode{BaudRate: baudRate, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}
	port, err := serial.Open(deviceName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", deviceName, err)
	}
	glog.Infof("%s: serial port is open, delaying %v for board reset", deviceName, resetDelay)
	time.Sleep(resetDelay)
	return New(port), nil
}

// New wraps a port that is already open and ready.
func New(port Port) *Board {
	return &Board{port: port}
}

// ListPorts returns the names of the serial ports on this machine.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// ReadFor reads one byte, waiting at most timeout for it to arrive.
func (b *Board) ReadFor(timeout time.Duration) (byte, error) {
	buf := make([]byte, 1)
	var n int
	var err error

	if err := b.port.SetReadTimeout(timeout); err != nil {
		return 0, err
	}
	// The loop is only for EINTR.
	for {
		n, err = b.port.Read(buf)
		if !isRetryableSyscallError(err) {
			break
		}
	}
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, NoResponseError(timeout)
	}
	if glog.V(3) {
		glog.Infof("read 0x%02X", buf[0])
	}
	return buf[0], nil
}

// Write sends all of p to the board.
func (b *Board) Write(p []byte) error {
	if glog.V(3) {
		glog.Infof("write % X", p)
	}
	for len(p) > 0 {
		n, err := b.port.Write(p)
		if isRetryableSyscallError(err) {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("write consumed 0 bytes")
		}
		p = p[n:]
	}
	return nil
}

// Close releases the port.
func (b *Board) Close() error {
	if b.port == nil {
		return fmt.Errorf("internal error: close: port not open")
	}
	if err := b.port.Close(); err != nil {
		glog.Warningf("close serial port: %v", err)
		return err
	}
	glog.V(1).Info("serial port closed")
	b.port = nil
	return nil
}

func isRetryableSyscallError(err error) bool {
	if errno, ok := err.(syscall.Errno); ok {
		return errno == syscall.EINTR
	}
	return false
}
