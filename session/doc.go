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

// Package session drives one smartpad through the two fixed sequences a
// caller ever needs: the one-time registration handshake and the
// paired-fetch loop that drains pending drawings. It owns the generation
// latching, CRC validation policy, and dimension bookkeeping that sit
// above individual catalog interactions, the same way mounted_file_system
// sequences a fuse.FileSystem's Init/Destroy pair around the calls a
// caller actually makes.
package session
