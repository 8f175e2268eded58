// Copyright 2025 walteh LLC
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

package sheet

import (
	"gitlab.com/tozd/go/errors"
)

// ❌ Failure classes shared by every stage. Callers match them with errors.Is.
var (
	// ErrLookup marks a field that a record or header does not carry.
	ErrLookup = errors.Base("field lookup failed")

	// ErrCollision marks two values that would land on the same name.
	ErrCollision = errors.Base("name collision")

	// ErrPrecondition marks input that cannot be processed at all.
	ErrPrecondition = errors.Base("precondition violated")

	// ErrEmptySheet is returned when a sheet has a header but no records.
	ErrEmptySheet = errors.Base("no data to operate on")
)
