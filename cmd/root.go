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
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orange",
	Short: "Assembler and loader for the SRC instruction set",
	Long: `Orange assembles source for the 32-bit SRC instruction set into a
load image, and downloads load images to a loader board attached to a
serial port.

Logging is done with glog. The glog flags (-v, --logtostderr, ...) are
accepted by every subcommand; -v=1 traces the assembler passes and -v=2
traces every line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog complains if the Go flag set was never parsed. The
		// values themselves were set through pflag.
		return flag.CommandLine.Parse(nil)
	},
}

// Execute adds all child commands to the root command and runs it. This
// is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	flag.Set("logtostderr", "true")
}
