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

package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits(t *testing.T) {
	assert.Equal(t, 4, Bytes(26))
	b := New(26)
	assert.Len(t, b, 4)
	SetBit(b, 0)
	SetBit(b, 25)
	PutBit(b, 9, true)
	assert.True(t, GetBit(b, 25))
	assert.True(t, GetBit(b, 9))
	assert.False(t, GetBit(b, 1))
	assert.Equal(t, 3, Count(b))
	ClrBit(b, 25)
	PutBit(b, 9, false)
	assert.Equal(t, 1, Count(b))
	ClrBit(b, 0)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}
