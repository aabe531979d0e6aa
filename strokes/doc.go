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

// Package strokes decodes the byte blob a smartpad transfers during
// DOWNLOAD_OLDEST_FILE into structured drawings: one or more concatenated
// stroke files, each a list of strokes of absolute (x, y, pressure)
// points. It has no dependency on the engine or session packages that
// drive the control plane; it is handed a buffer and returns values, the
// same way fuseutil's wire-format helpers never touch a Connection.
package strokes
