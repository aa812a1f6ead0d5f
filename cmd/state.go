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
	"io/fs"
	"os"

	"github.com/bgallie/classic/cryptors"
	"gopkg.in/yaml.v3"
)

// Workspace is the cipher carried from one command to the next through the
// --state file.
type Workspace struct {
	Type       string `yaml:"type"`
	Period     int    `yaml:"period,omitempty"`
	Ciphertext string `yaml:"ciphertext,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Strict     bool   `yaml:"strict,omitempty"`
}

// loadWorkspace reads the workspace in path.  A missing file is an empty
// workspace.
func loadWorkspace(path string) (Workspace, error) {
	var ws Workspace
	if path == "" {
		return ws, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ws, nil
	}
	if err != nil {
		return ws, err
	}
	if err := yaml.Unmarshal(b, &ws); err != nil {
		return ws, fmt.Errorf("workspace %s: %w", path, err)
	}
	return ws, nil
}

// save writes the workspace to path; an empty path saves nothing.
func (ws Workspace) save(path string) error {
	if path == "" {
		return nil
	}
	b, err := yaml.Marshal(ws)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

// open builds the workspace cipher from the registry.  The period is set
// before the key since most keys are checked against it.
func (ws Workspace) open(r *cryptors.Registry) (cryptors.Cipher, error) {
	if ws.Type == "" {
		return nil, fmt.Errorf("%w: no cipher type given", cryptors.ErrUnknownType)
	}
	_, c, err := r.New(ws.Type)
	if err != nil {
		return nil, err
	}
	if ws.Ciphertext != "" {
		if err := c.SetCiphertext(ws.Ciphertext); err != nil {
			return nil, err
		}
	}
	if p, ok := c.(cryptors.Periodic); ok && ws.Period > 0 {
		if err := p.SetPeriod(ws.Period); err != nil {
			return nil, err
		}
	}
	if s, ok := c.(cryptors.Strictable); ok {
		s.SetStrict(ws.Strict)
	}
	if ws.Key != "" {
		if err := c.Restore(ws.Key); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// capture records the state of c.
func (ws *Workspace) capture(c cryptors.Cipher) {
	ws.Type = c.Type()
	ws.Ciphertext = c.Ciphertext()
	ws.Key = c.Key()
	if p, ok := c.(cryptors.Periodic); ok {
		ws.Period = p.Period()
	}
}
