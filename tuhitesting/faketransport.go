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

// Package tuhitesting holds test doubles shared across this module's test
// suites, the same role fusetesting plays for the teacher: a FakeTransport
// stands in for a real GATT link so the tuhi and session tests never need a
// Bluetooth stack.
package tuhitesting

import (
	"context"
	"fmt"
	"time"

	tuhi "github.com/tuhiproject/tuhi-sub000"
)

// Exchange is one scripted round of a FakeTransport script: the bytes a
// caller is expected to send as its request (nil means "any request, or
// none"), and the bytes to hand back as the reply (nil means "time out").
type Exchange struct {
	WantRequest []byte
	Reply       []byte
}

// FakeTransport is a scripted tuhi.Transport double. Calls are matched
// against Script in order; a caller that provides more requests than the
// script has exchanges for, or whose request bytes don't match
// WantRequest when WantRequest is non-nil, fails the test immediately via
// a panic carrying a descriptive message (mirroring the teacher's
// preference for loud, early failure in test doubles over silently wrong
// behavior).
type FakeTransport struct {
	Script []Exchange

	// Calls records every request this transport has seen, in order, for
	// assertions a test wants to make about what the engine actually sent.
	Calls [][]byte

	next int
}

// Transport returns a tuhi.Transport bound to this FakeTransport's script.
func (f *FakeTransport) Transport() tuhi.Transport {
	return func(ctx context.Context, request []byte, timeout time.Duration) ([]byte, error) {
		f.Calls = append(f.Calls, request)

		if f.next >= len(f.Script) {
			panic(fmt.Sprintf("tuhitesting: FakeTransport script exhausted at call %d (request % X)", f.next, request))
		}
		step := f.Script[f.next]
		f.next++

		if step.WantRequest != nil && !bytesEqual(step.WantRequest, request) {
			panic(fmt.Sprintf("tuhitesting: FakeTransport call %d: request = % X, want % X", f.next-1, request, step.WantRequest))
		}

		if step.Reply == nil {
			return nil, fmt.Errorf("tuhitesting: simulated timeout after %v", timeout)
		}
		return step.Reply, nil
	}
}

// Done reports whether every scripted exchange has been consumed.
func (f *FakeTransport) Done() bool {
	return f.next == len(f.Script)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
