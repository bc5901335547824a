// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"encoding/binary"
	"fmt"

	"github.com/twmb/murmur3"
)

// GetShortLE gets a short value from a byte array in little endian format.
func GetShortLE(array []byte, offset int) int {
	return int(array[offset]&0xFF) | (int(array[offset+1]&0xFF) << 8)
}

// PutShortLE puts a short value into a byte array in little endian format.
func PutShortLE(array []byte, offset int, value int) {
	array[offset] = byte(value)
	array[offset+1] = byte(value >> 8)
}

// BoolToInt converts a boolean flag to 0/1, as used when packing flag bytes
// in the binary sketch formats.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ComputeSeedHash derives a compact 16-bit fingerprint of a hash seed so that
// two sketches can be checked for seed compatibility without comparing the
// full 64-bit seed value. Mirrors the teacher's seed-hash check used to
// reject set operations between incompatibly-seeded sketches.
func ComputeSeedHash(seed uint64) (uint16, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h := murmur3.SeedSum64(0, buf[:])
	seedHash := uint16(h & 0xFFFF)
	if seedHash == 0 {
		return 0, fmt.Errorf("seed %d produces a zero seed hash; choose a different seed", seed)
	}
	return seedHash, nil
}
