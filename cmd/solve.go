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
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bgallie/classic/cryptors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var periods string

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve [ciphertext...]",
	Short: "Search for the key of a ciphertext",
	Long: `Search for the key that gives the most English-like plaintext.  With
--periods a-b every period in the range is searched on its own copy of the
cipher, side by side, and the best is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ws, err := openSession(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if periods != "" {
			if c, err = solvePeriods(cmd.Context(), cmd.OutOrStdout(), ws, periods); err != nil {
				return err
			}
		} else if _, err := solveOne(cmd.Context(), c, false); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "key: %s\n%s\n", c.Key(), c.Decode())
		return closeSession(c, ws)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&periods, "periods", "", "range of periods to try, e.g. 4-9")
	solveCmd.Flags().Uint64("interval", 0, "candidates between progress reports (0 for none)")
	cobra.CheckErr(viper.BindPFlag("progress.interval", solveCmd.Flags().Lookup("interval")))
}

func periodOf(c cryptors.Cipher) int {
	if p, ok := c.(cryptors.Periodic); ok {
		return p.Period()
	}
	return 0
}

// solveOne runs the search of c inside a span.
func solveOne(ctx context.Context, c cryptors.Cipher, quiet bool) (float64, error) {
	_, span := startSpan(ctx, "solve", c.Type(), periodOf(c))
	defer span.End()
	logger.Info("solve started", "type", c.Type(), "period", periodOf(c))
	s, err := c.Solve(searchOptions(os.Stderr, quiet))
	if err != nil {
		span.RecordError(err)
		return s, err
	}
	span.SetAttributes(attribute.Float64("score", s), attribute.String("key", c.Key()))
	logger.Info("solve finished", "type", c.Type(), "period", periodOf(c), "score", s, "key", c.Key())
	return s, nil
}

// parsePeriods reads a single period or a range a-b.
func parsePeriods(s string) ([]int, error) {
	lo, hi, found := strings.Cut(s, "-")
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", cryptors.ErrInvalidPeriod, s)
	}
	b := a
	if found {
		if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return nil, fmt.Errorf("%w: %q", cryptors.ErrInvalidPeriod, s)
		}
	}
	if a < 1 || b < a {
		return nil, fmt.Errorf("%w: %q", cryptors.ErrInvalidPeriod, s)
	}
	out := make([]int, 0, b-a+1)
	for p := a; p <= b; p++ {
		out = append(out, p)
	}
	return out, nil
}

// solvePeriods solves one cipher per period concurrently, reports each to w
// and returns the best.
func solvePeriods(ctx context.Context, w io.Writer, ws *Workspace, spec string) (cryptors.Cipher, error) {
	ps, err := parsePeriods(spec)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ciphers := make([]cryptors.Cipher, len(ps))
	scores := make([]float64, len(ps))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range ps {
		i, p := i, p
		g.Go(func() error {
			trial := *ws
			trial.Period, trial.Key = p, ""
			c, err := trial.open(registry)
			if err != nil {
				return fmt.Errorf("period %d: %w", p, err)
			}
			if _, ok := c.(cryptors.Periodic); !ok {
				return fmt.Errorf("%s has no period", c.Type())
			}
			s, err := solveOne(gCtx, c, true)
			if err != nil {
				return fmt.Errorf("period %d: %w", p, err)
			}
			ciphers[i], scores[i] = c, s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	best := 0
	for i, p := range ps {
		fmt.Fprintf(w, "period %3d  score %12.4f  key %s\n", p, scores[i], ciphers[i].Key())
		if scores[i] > scores[best] {
			best = i
		}
	}
	return ciphers[best], nil
}
