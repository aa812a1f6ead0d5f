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
	"strings"

	"github.com/bgallie/classic/cryptors"
	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [ciphertext...]",
	Short: "Decipher ciphertext with a known key",
	Long: `Decipher the ciphertext given on the command line, or read from standard
input, with the key given by --key.  PEM and ASCII85 armored input written by
encrypt is recognised, and supplies the cipher type and period when the flags
do not.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ct, h, err := readArmored(strings.NewReader(raw))
		if err != nil {
			return err
		}
		ws := Workspace{Type: cipherType, Period: period, Ciphertext: ct, Key: keySpec}
		if ws.Type == "" {
			ws.Type = h.Type
		}
		if ws.Period == 0 {
			ws.Period = h.Period
		}
		if keySpec == "" {
			return fmt.Errorf("%w: --key is required", cryptors.ErrInvalidKey)
		}
		c, err := ws.open(registry)
		if err != nil {
			return err
		}
		logger.Info("deciphered", "type", c.Type(), "compressed", h.Compressed)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Decode())
		return err
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}
