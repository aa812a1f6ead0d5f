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
	"errors"
	"fmt"

	"github.com/bgallie/classic/cryptors"
	"github.com/spf13/cobra"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [plaintext...]",
	Short: "Encipher plaintext with a classical cipher",
	Long: `Encipher the plaintext given on the command line, or read from standard
input, with the cipher named by --type and the key given by --key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if useASCII85 && usePem {
			return errors.New("choose one of --pem and --ascii85")
		}
		if keySpec == "" {
			return fmt.Errorf("%w: --key is required", cryptors.ErrInvalidKey)
		}
		pt, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ws := Workspace{Type: cipherType, Period: period, Key: keySpec}
		c, err := ws.open(registry)
		if err != nil {
			return err
		}
		ct, err := c.Encode(pt)
		if err != nil {
			return err
		}
		logger.Info("enciphered", "type", c.Type(), "letters", len(ct))
		if p, ok := c.(cryptors.Periodic); ok {
			ws.Period = p.Period()
		}
		return writeArmored(cmd.OutOrStdout(), header{Type: c.Type(), Period: ws.Period}, ct,
			armorOptions{pem: usePem, ascii85: useASCII85, compress: compression})
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "ascii85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVar(&usePem, "pem", false, "use PEM encoding")
	encryptCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress the ciphertext using flate")
}
