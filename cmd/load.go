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
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/willthamic/orange-assembler/pkg/asm"
	"github.com/willthamic/orange-assembler/pkg/loader"
)

var (
	loadPort       string
	loadBaud       int
	loadResetDelay time.Duration
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load imageFile",
	Short: "Download an image to the loader board",
	Long: `Load opens the serial line to the loader board, synchronizes with
it, writes every word of the image to target memory and starts the
target at the address of the first word.

Opening the port through a USB-serial adapter resets most boards, so
load waits --reset-delay before talking to it. The port is released
when load exits.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return load(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadPort, "port", "p", "", "serial device of the loader board")
	loadCmd.Flags().IntVar(&loadBaud, "baud", loader.DefaultBaudRate, "baud rate; must match the board firmware")
	loadCmd.Flags().DurationVar(&loadResetDelay, "reset-delay", loader.DefaultResetDelay, "wait after opening the port")
	loadCmd.MarkFlagRequired("port")
}

func load(cmd *cobra.Command, image string) error {
	records, err := asm.ReadResults(image)
	if err != nil {
		return fmt.Errorf("%s: %w", image, err)
	}
	board, err := loader.Open(loadPort, loadBaud, loadResetDelay)
	if err != nil {
		return err
	}
	defer board.Close()

	if err := loader.Download(board, records); err != nil {
		glog.Errorf("download aborted: %v", err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d words from %s\n", len(records), image)
	return nil
}
