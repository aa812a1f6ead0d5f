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

// Package bitops manipulates bit sets packed into byte slices, bit 0 being
// the low bit of the first byte.
package bitops

// Bytes returns the number of bytes needed to hold n bits.
func Bytes(n int) int {
	return (n + 7) >> 3
}

// New returns a cleared set able to hold n bits.
func New(n int) []byte {
	return make([]byte, Bytes(n))
}

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= (1 << (bit & 7))
	return ary
}

func ClrBit(ary []byte, bit uint) []byte {
	ary[bit>>3] &= ^(1 << (bit & 7))
	return ary
}

// PutBit sets or clears bit according to v.
func PutBit(ary []byte, bit uint, v bool) []byte {
	if v {
		return SetBit(ary, bit)
	}
	return ClrBit(ary, bit)
}

func GetBit(ary []byte, bit uint) bool {
	return (ary[bit>>3]&(1<<(bit&7)) != 0)
}

// Count returns the number of set bits.
func Count(ary []byte) int {
	n := 0
	for _, b := range ary {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}
