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

import "testing"

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier("112233445566")
	if err != nil {
		t.Fatalf("ParseIdentifier() error = %v", err)
	}
	if id != (Identifier{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}) {
		t.Errorf("Identifier = % X, want 11 22 33 44 55 66", id[:])
	}
	if id.String() != "112233445566" {
		t.Errorf("String() = %q, want the input back", id.String())
	}
}

func TestParseIdentifierRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{name: "too short", in: "1122334455"},
		{name: "too long", in: "11223344556677"},
		{name: "uppercase hex", in: "1122334455AA"},
		{name: "non-hex character", in: "11223344556g"},
		{name: "empty", in: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseIdentifier(tc.in); err == nil {
				t.Errorf("ParseIdentifier(%q) succeeded, want an error", tc.in)
			}
		})
	}
}
