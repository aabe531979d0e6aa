// Copyright 2015 Google Inc. All Rights Reserved.
//
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

package tuhi

import (
	"encoding/hex"
	"fmt"
)

// Identifier is the 6-byte device identifier the host chooses before
// registration and reuses forever after, exchanged with the device during
// CONNECT and REGISTER_PRESS_BUTTON.
type Identifier [6]byte

// ParseIdentifier validates s as a 12-character lowercase hexadecimal
// string and decodes it into an Identifier. Invalid characters or the
// wrong length produce an error before any transport I/O is attempted.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier

	if len(s) != 12 {
		return id, fmt.Errorf("tuhi: identifier %q must be exactly 12 characters, got %d", s, len(s))
	}

	for _, c := range s {
		if !isLowerHex(c) {
			return id, fmt.Errorf("tuhi: identifier %q contains a non-lowercase-hex character %q", s, c)
		}
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("tuhi: identifier %q is not valid hex: %v", s, err)
	}

	copy(id[:], decoded)
	return id, nil
}

func isLowerHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// String renders id back to the lowercase hex form ParseIdentifier accepts.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}
