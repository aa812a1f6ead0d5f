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

package tracker

import (
	"fmt"
	"sort"
)

// Assignment sets key column Col to Value.
type Assignment struct {
	Col, Value int
}

// ColumnConflict is returned when two assignments disagree on a column.
type ColumnConflict struct {
	Col, Value, Existing int
	Internal             bool
}

func (c *ColumnConflict) Error() string {
	where := "key"
	if c.Internal {
		where = "fragment"
	}
	return fmt.Sprintf("%v: column %d=%d contradicts %d in %s", ErrBadSub, c.Col, c.Value, c.Existing, where)
}

func (c *ColumnConflict) Unwrap() error { return ErrBadSub }

// Columns is a periodic key whose columns may be unknown.  It follows the
// same acceptance rules as Substitution.
type Columns struct {
	vals   []int
	strict bool
}

// NewColumns returns n unknown columns.
func NewColumns(n int) *Columns {
	c := &Columns{}
	c.Resize(n)
	return c
}

// Resize changes the period, clearing the key.
func (c *Columns) Resize(n int) {
	c.vals = make([]int, n)
	c.Reset()
}

func (c *Columns) SetStrict(strict bool) { c.strict = strict }

// Len returns the number of columns.
func (c *Columns) Len() int { return len(c.vals) }

// Get returns the value of column col, or -1.
func (c *Columns) Get(col int) int { return c.vals[col] }

// Values returns a copy of the key with -1 for unknown columns.
func (c *Columns) Values() []int { return append([]int(nil), c.vals...) }

// Set installs a complete or partial key without consistency checks.
func (c *Columns) Set(vals []int) {
	copy(c.vals, vals)
}

// Assign applies a set of column assignments atomically.
func (c *Columns) Assign(as []Assignment) (Result, error) {
	pending := make(map[int]int, len(as))
	alt := false
	for _, a := range as {
		if a.Col < 0 || a.Col >= len(c.vals) {
			return Result{}, fmt.Errorf("column %d out of range [0,%d)", a.Col, len(c.vals))
		}
		if v, ok := pending[a.Col]; ok && v != a.Value {
			return Result{}, &ColumnConflict{Col: a.Col, Value: a.Value, Existing: v, Internal: true}
		}
		pending[a.Col] = a.Value
		if old := c.vals[a.Col]; old >= 0 && old != a.Value {
			if c.strict {
				return Result{}, &ColumnConflict{Col: a.Col, Value: a.Value, Existing: old}
			}
			alt = true
		}
	}
	res := Result{Kind: NewMapping}
	if alt {
		res.Kind = AlternateMapping
	}
	for col, v := range pending {
		if old := c.vals[col]; old >= 0 && old != v {
			res.Columns = append(res.Columns, col)
		}
		c.vals[col] = v
	}
	sort.Ints(res.Columns)
	return res, nil
}

// Undo clears the listed columns.
func (c *Columns) Undo(cols ...int) {
	for _, col := range cols {
		if col >= 0 && col < len(c.vals) {
			c.vals[col] = -1
		}
	}
}

// Reset clears every column.
func (c *Columns) Reset() {
	for i := range c.vals {
		c.vals[i] = -1
	}
}
