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
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// How long to wait for each byte of a response.
const responseDelay = 50 * time.Millisecond

const syncTries = 3

// Pause between sync attempts. A variable so tests need not wait.
var syncRetryDelay = 1 * time.Second

// ErrProtocolVersion means the board runs firmware for another protocol.
var ErrProtocolVersion = errors.New("protocol version mismatch")

type UnexpectedResponseError struct {
	Command  byte
	Response byte
}

func (u *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("command 0x%X: unexpected response 0x%X", u.Command, u.Response)
}

// Bring the board to a known state: drain anything it is still sending,
// synchronize, and check it speaks our protocol.
func establishConnection(b *Board) error {
	if err := drain(b); err != nil {
		return err
	}
	if err := getSyncResponse(b); err != nil {
		return err
	}
	if err := checkProtocolVersion(b); err != nil {
		return err
	}
	glog.V(1).Info("protocol version OK")
	return nil
}

// The longest reply is GetVer's ack and version byte, and at most
// syncTries syncs can be waiting for their acks, so a board that is
// sane has far fewer bytes in flight than this.
const drainLimit = 16

// Discard whatever the board is still sending. drainLimit bytes or
// more means it is not speaking this protocol.
func drain(b *Board) error {
	for i := 0; i < drainLimit; i++ {
		if _, err := b.ReadFor(responseDelay); err != nil {
			glog.V(2).Info("board is drained")
			return nil
		}
	}
	return fmt.Errorf("board is transmitting continuously")
}

// Slowly send syncs until one is acked. Once one is, consume the acks
// of any earlier syncs that may arrive late.
func getSyncResponse(b *Board) error {
	var err error
	nSent := 0
	for i := 0; i < syncTries; i++ {
		err = doCommand(b, CmdSync)
		nSent++
		if err == nil {
			for nSent--; nSent > 0; nSent-- {
				b.ReadFor(responseDelay)
			}
			return nil
		}
		glog.Warningf("sync command failed: %v: try %d", err, i+1)
		time.Sleep(syncRetryDelay)
	}
	return fmt.Errorf("failed to synchronize: %w", err)
}

func checkProtocolVersion(b *Board) error {
	resp, err := doFixedCommand(b, []byte{CmdGetVer}, 1)
	if err != nil {
		return err
	}
	if resp[0] != ProtocolVersion {
		return fmt.Errorf("%w: host 0x%02X, board 0x%02X",
			ErrProtocolVersion, ProtocolVersion, resp[0])
	}
	return nil
}

// Do a command with no arguments and no response.
func doCommand(b *Board, cmd byte) error {
	_, err := doFixedCommand(b, []byte{cmd}, 0)
	return err
}

func getAck(b *Board, cmd byte) error {
	r, err := b.ReadFor(responseDelay)
	if err != nil {
		return err
	}
	if r != Ack(cmd) {
		return &UnexpectedResponseError{cmd, r}
	}
	return nil
}

// Send a command byte and its fixed arguments, wait for the ack, then
// read the fixed response of expected bytes, if any. If the board naks,
// the response is empty and the error is an *UnexpectedResponseError.
// If the ack arrives but the response does not, the returned slice is
// partial and the error is non-nil.
func doFixedCommand(b *Board, fixed []byte, expected int) ([]byte, error) {
	if len(fixed) < 1 || len(fixed) > 9 {
		return nil, fmt.Errorf("invalid fixed command length %d", len(fixed))
	}
	if expected < 0 || expected > 8 {
		return nil, fmt.Errorf("invalid fixed response length %d", expected)
	}
	glog.V(2).Infof("doFixedCommand: sending % X", fixed)
	if err := b.Write(fixed); err != nil {
		return nil, err
	}
	if err := getAck(b, fixed[0]); err != nil {
		return nil, err
	}

	response := make([]byte, expected)
	for i := range response {
		r, err := b.ReadFor(responseDelay)
		if err != nil {
			return response[:i], err
		}
		response[i] = r
	}
	return response, nil
}
