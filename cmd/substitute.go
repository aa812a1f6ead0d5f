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
	"io"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/tracker"
	"github.com/spf13/cobra"
)

var (
	subCT     string
	subPT     string
	subOffset int
	subStrict bool
)

// substituteCmd represents the substitute command
var substituteCmd = &cobra.Command{
	Use:   "substitute",
	Short: "Record that a ciphertext fragment deciphers to a plaintext fragment",
	Long: `Add a ciphertext to plaintext correspondence to the workspace key.
Without --ct the fragment is taken from the ciphertext at --offset.  Entries
that overwrite earlier ones are reported; with --strict they are refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if subPT == "" {
			return fmt.Errorf("--pt is required")
		}
		c, ws, err := openSession(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		s, err := substituter(c)
		if err != nil {
			return err
		}
		if st, ok := c.(cryptors.Strictable); ok && subStrict {
			st.SetStrict(true)
			ws.Strict = true
		}
		res, err := s.Substitute(subCT, subPT, subOffset)
		if err != nil {
			return err
		}
		logger.Info("substituted", "type", c.Type(), "ct", subCT, "pt", subPT, "offset", subOffset, "kind", res.Kind.String())
		reportResult(cmd.OutOrStdout(), res)
		fmt.Fprintf(cmd.OutOrStdout(), "key: %s\n%s\n", c.Key(), c.Decode())
		return closeSession(c, ws)
	},
}

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Forget part or all of the workspace key",
	Long: `Forget the key entries for the ciphertext letters given by --ct, or the
whole key when --ct is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ws, err := openSession(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		s, err := substituter(c)
		if err != nil {
			return err
		}
		s.Undo(subCT)
		logger.Info("undone", "type", c.Type(), "ct", subCT)
		fmt.Fprintf(cmd.OutOrStdout(), "key: %s\n%s\n", c.Key(), c.Decode())
		return closeSession(c, ws)
	},
}

func init() {
	rootCmd.AddCommand(substituteCmd)
	rootCmd.AddCommand(undoCmd)
	substituteCmd.Flags().StringVar(&subCT, "ct", "", "the ciphertext fragment")
	substituteCmd.Flags().StringVar(&subPT, "pt", "", "the plaintext it deciphers to")
	substituteCmd.Flags().IntVar(&subOffset, "offset", 0, "position of the fragment in the text")
	substituteCmd.Flags().BoolVar(&subStrict, "strict", false, "refuse to overwrite existing key entries")
	undoCmd.Flags().StringVar(&subCT, "ct", "", "the ciphertext letters to forget (default all)")
}

func substituter(c cryptors.Cipher) (cryptors.Substituter, error) {
	s, ok := c.(cryptors.Substituter)
	if !ok {
		return nil, fmt.Errorf("%s does not take substitutions", c.Type())
	}
	return s, nil
}

// reportResult describes what a substitution overwrote.
func reportResult(w io.Writer, res tracker.Result) {
	if res.Kind == tracker.NewMapping {
		fmt.Fprintln(w, "new mapping")
		return
	}
	fmt.Fprint(w, "alternate mapping")
	if len(res.Displaced) > 0 {
		fmt.Fprintf(w, ", displaced %q", string(res.Displaced))
	}
	if len(res.Columns) > 0 {
		fmt.Fprintf(w, ", columns %v", res.Columns)
	}
	fmt.Fprintln(w)
}
