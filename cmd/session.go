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
	"os"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/search"
	"golang.org/x/term"
)

// openSession builds the cipher a command works on from the workspace file
// and the command line.  A new cipher type starts a fresh workspace and a
// new period drops the stored key.  The ciphertext comes from args, or from
// in when args is empty and the workspace holds none.
func openSession(args []string, in io.Reader) (cryptors.Cipher, *Workspace, error) {
	ws, err := loadWorkspace(stateFile)
	if err != nil {
		return nil, nil, err
	}
	if cipherType != "" && cipherType != ws.Type {
		ws = Workspace{Type: cipherType}
	}
	if len(args) > 0 || ws.Ciphertext == "" {
		text, err := readText(args, in)
		if err != nil {
			return nil, nil, err
		}
		ws.Ciphertext = text
	}
	if period > 0 && period != ws.Period {
		ws.Period, ws.Key = period, ""
	}
	if keySpec != "" {
		ws.Key = keySpec
	}
	ws.Strict = ws.Strict || cfg.Tracker.Strict
	c, err := ws.open(registry)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("cipher opened", "type", ws.Type, "period", ws.Period, "state", stateFile)
	return c, &ws, nil
}

// closeSession saves the state of c to the workspace file.
func closeSession(c cryptors.Cipher, ws *Workspace) error {
	ws.capture(c)
	return ws.save(stateFile)
}

// searchOptions reports progress on a terminal as a rewritten status line,
// and in the log otherwise.  quiet suppresses the status line for searches
// running side by side.
func searchOptions(w io.Writer, quiet bool) search.Options {
	tty := !quiet && term.IsTerminal(int(os.Stderr.Fd()))
	return search.Options{
		Interval: cfg.Progress.Interval,
		Progress: func(e search.Event) error {
			if tty {
				fmt.Fprintf(w, "\r%10d %10.3f %s", e.Iteration, e.Score, e.Key)
				return nil
			}
			logger.Debug("progress", "iteration", e.Iteration, "score", e.Score, "key", e.Key)
			return nil
		},
		BestFit: func(e search.Event) error {
			logger.Debug("improved", "iteration", e.Iteration, "score", e.Score, "key", e.Key, "text", e.Text)
			return nil
		},
		Metrics: metrics,
	}
}
