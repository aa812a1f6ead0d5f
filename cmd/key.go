/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key [ciphertext...]",
	Short: "Show or set the workspace cipher, period and key",
	Long: `Show the workspace cipher type, period and key with the text they
decode to.  --type, --period and --key change them first; a new ciphertext
may be given as arguments or on stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ws, err := openSession(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "type: %s\n", c.Type())
		if p := periodOf(c); p > 0 {
			fmt.Fprintf(w, "period: %d\n", p)
		}
		fmt.Fprintf(w, "key: %s\n%s\n", c.Key(), c.Decode())
		return closeSession(c, ws)
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
}
