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
	"go.opentelemetry.io/otel/attribute"
)

var tipWord string

// tipCmd represents the tip command
var tipCmd = &cobra.Command{
	Use:   "tip [ciphertext...]",
	Short: "Place a known plaintext word and derive the key from it",
	Long: `Find where the tip (a word known to be in the plaintext) fits the
ciphertext and the key built so far, and install the key that places it
there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tipWord == "" {
			return fmt.Errorf("--tip is required")
		}
		c, ws, err := openSession(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		_, span := startSpan(cmd.Context(), "tip", c.Type(), periodOf(c))
		defer span.End()
		off, err := c.LocateTip(tipWord)
		if err != nil {
			span.RecordError(err)
			return err
		}
		span.SetAttributes(attribute.Int("tip.offset", off))
		logger.Info("tip placed", "type", c.Type(), "tip", tipWord, "offset", off, "key", c.Key())
		fmt.Fprintf(cmd.OutOrStdout(), "offset: %d\nkey: %s\n%s\n", off, c.Key(), c.Decode())
		return closeSession(c, ws)
	},
}

func init() {
	rootCmd.AddCommand(tipCmd)
	tipCmd.Flags().StringVar(&tipWord, "tip", "", "a word known to be in the plaintext")
}
