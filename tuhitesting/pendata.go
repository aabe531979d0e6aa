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

package tuhitesting

import "context"

// FixedPenData returns a session.Session Fetch data function that always
// hands back buf, regardless of which pending file is being downloaded.
// Tests that exercise more than one file in a single Fetch should instead
// close over a counter and return a different buffer per call.
func FixedPenData(buf []byte) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		return buf, nil
	}
}

// SequencedPenData returns a data function that hands back the buffers in
// bufs in order, one per call, and panics if called more times than bufs
// has entries.
func SequencedPenData(bufs [][]byte) func(context.Context) ([]byte, error) {
	i := 0
	return func(context.Context) ([]byte, error) {
		if i >= len(bufs) {
			panic("tuhitesting: SequencedPenData called more times than scripted")
		}
		buf := bufs[i]
		i++
		return buf, nil
	}
}
