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
	"github.com/spf13/cobra"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the cipher types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTypes(cmd.OutOrStdout(), registry)
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

// listTypes writes each type with the operations beyond the common ones.
func listTypes(w io.Writer, r *cryptors.Registry) error {
	for _, name := range r.Types() {
		id, c, err := r.New(name)
		if err != nil {
			return err
		}
		r.Release(id)
		var extra string
		if _, ok := c.(cryptors.Periodic); ok {
			extra += " period"
		}
		if _, ok := c.(cryptors.Substituter); ok {
			extra += " substitute"
		}
		if _, err := fmt.Fprintf(w, "%-12s%s\n", name, extra); err != nil {
			return err
		}
	}
	return nil
}
