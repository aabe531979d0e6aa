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

package catalog

import "testing"

func TestBuildGetStrokesGen1WithPreamble(t *testing.T) {
	call, res := BuildGetStrokes(GEN1)

	done, err := call.Decode(0, Frame{Opcode: 0xC7, Payload: []byte{0x00, 0x00, 0x00, 0x03}})
	if done || err != nil {
		t.Fatalf("preamble: done=%v err=%v, want done=false err=nil", done, err)
	}
	if res.Count != 3 || !res.HaveCount {
		t.Fatalf("after preamble: Count=%d HaveCount=%v, want 3/true", res.Count, res.HaveCount)
	}

	done, err = call.Decode(1, Frame{Opcode: 0xCD, Payload: []byte{0x21, 0x03, 0x04, 0x05, 0x06, 0x07}})
	if !done || err != nil {
		t.Fatalf("timestamp: done=%v err=%v, want done=true err=nil", done, err)
	}
}

func TestBuildGetStrokesGen1WithoutPreamble(t *testing.T) {
	call, res := BuildGetStrokes(GEN1)

	// Firmware sometimes skips the 0xC7 preamble entirely.
	done, err := call.Decode(0, Frame{Opcode: 0xCD, Payload: []byte{0x21, 0x03, 0x04, 0x05, 0x06, 0x07}})
	if !done || err != nil {
		t.Fatalf("Decode() = (%v, %v), want (true, nil)", done, err)
	}
	if res.HaveCount {
		t.Fatal("HaveCount should remain false when the preamble never arrives")
	}
}

func TestBuildGetStrokesUnsupportedBeforeRegistration(t *testing.T) {
	// No generation has been latched yet, so there is no entry to select.
	call, _ := BuildGetStrokes(ANY)
	if call.Err == nil {
		t.Fatal("want a call-level error at version ANY")
	}
}

func TestBuildGetStrokesGen3Epoch(t *testing.T) {
	call, res := BuildGetStrokes(GEN3)
	payload := new(PayloadBuilder).AppendUint32LE(5).AppendUint32LE(1000).Bytes()
	done, err := call.Decode(0, Frame{Opcode: 0xCF, Payload: payload})
	if !done || err != nil {
		t.Fatalf("Decode() = (%v, %v), want (true, nil)", done, err)
	}
	if res.Count != 5 || res.Timestamp != 1000 {
		t.Errorf("Count=%d Timestamp=%d, want 5/1000", res.Count, res.Timestamp)
	}
}

func TestBuildAvailableFilesCountEndianness(t *testing.T) {
	call, res := BuildAvailableFilesCount(GEN1)
	if _, err := call.Decode(0, Frame{Opcode: 0xC2, Payload: []byte{0x01, 0x00}}); err != nil {
		t.Fatal(err)
	}
	if res.Count != 256 {
		t.Errorf("GEN1 big-endian Count = %d, want 256", res.Count)
	}

	call, res = BuildAvailableFilesCount(GEN2)
	if _, err := call.Decode(0, Frame{Opcode: 0xC2, Payload: []byte{0x01, 0x00}}); err != nil {
		t.Fatal(err)
	}
	if res.Count != 1 {
		t.Errorf("GEN2 little-endian Count = %d, want 1", res.Count)
	}
}

func TestBuildDownloadOldestFileAcknowledgement(t *testing.T) {
	call := BuildDownloadOldestFile()
	if _, err := call.Decode(0, Frame{Opcode: 0xC8, Payload: []byte{0xBE}}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := call.Decode(0, Frame{Opcode: 0xC8, Payload: []byte{0x00}}); err == nil {
		t.Fatal("expected an error for a missing 0xBE acknowledgement")
	}
}

func TestBuildWaitForEndReadGen1TwoFrames(t *testing.T) {
	call, res := BuildWaitForEndRead(GEN1)

	done, err := call.Decode(0, Frame{Opcode: 0xC8, Payload: []byte{0xED}})
	if done || err != nil {
		t.Fatalf("done marker: done=%v err=%v, want done=false err=nil", done, err)
	}

	// Unlike GEN2+, the GEN1 CRC frame is read in wire order, unreversed.
	done, err = call.Decode(1, Frame{Opcode: 0xC9, Payload: []byte{0xEF, 0xBE, 0xAD, 0xDE}})
	if !done || err != nil {
		t.Fatalf("crc frame: done=%v err=%v, want done=true err=nil", done, err)
	}
	if res.CRC != 0xEFBEADDE {
		t.Errorf("CRC = 0x%08X, want 0xEFBEADDE", res.CRC)
	}
}

func TestBuildWaitForEndReadGen2ReversedCRC(t *testing.T) {
	call, res := BuildWaitForEndRead(GEN2)

	done, err := call.Decode(0, Frame{Opcode: 0xC8, Payload: []byte{0xED, 0xEF, 0xBE, 0xAD, 0xDE}})
	if !done || err != nil {
		t.Fatalf("Decode() = (%v, %v), want (true, nil)", done, err)
	}
	if res.CRC != 0xDEADBEEF {
		t.Errorf("CRC = 0x%08X, want 0xDEADBEEF", res.CRC)
	}
}

func TestBuildDeleteOldestFileGen1FireAndForget(t *testing.T) {
	call := BuildDeleteOldestFile(GEN1)
	if call.RequiresReply {
		t.Fatal("GEN1 DELETE_OLDEST_FILE must not wait for a reply")
	}
	if len(call.Requests) != 1 {
		t.Fatalf("Requests = %d entries, want 1", len(call.Requests))
	}
}

func TestBuildDeleteOldestFileGen2WaitsForAck(t *testing.T) {
	call := BuildDeleteOldestFile(GEN2)
	if !call.RequiresReply {
		t.Fatal("GEN2 DELETE_OLDEST_FILE must wait for a reply")
	}
}
