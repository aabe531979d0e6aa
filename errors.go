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

import "github.com/tuhiproject/tuhi-sub000/catalog"

// Error is the single typed error this package and its callers raise.
// It is an alias for catalog.Error so that callers never need to import
// catalog directly just to type-switch on a failure.
type Error = catalog.Error

// ErrorCode is an alias for catalog.ErrorCode.
type ErrorCode = catalog.ErrorCode

// These mirror catalog.ErrorCode's constants so that callers who only
// import this package still have names to compare against.
const (
	Success             = catalog.Success
	GeneralError        = catalog.GeneralError
	InvalidState        = catalog.InvalidState
	ReadOnlyParam       = catalog.ReadOnlyParam
	CommandNotSupported = catalog.CommandNotSupported
	AuthorizationError  = catalog.AuthorizationError
	UnexpectedReply     = catalog.UnexpectedReply
	UnexpectedData      = catalog.UnexpectedData
	MissingReply        = catalog.MissingReply
	StrokeParsing       = catalog.StrokeParsing
)
