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

/*
Package operation implements the record transformation pipeline.

	+-------------+     +-------------+     +--------------+     +------------+
	| renameFiles | --> | aliasFields | --> | deleteFields | --> | writeSheet |
	|  (gated)    |     |  (gated)    |     |   (gated)    |     |  (always)  |
	+------+------+     +-------------+     +--------------+     +------+-----+
	       |                                                            |
	       +------------------------ status.Manager --------------------+

🎯 Purpose:
- Turns a config into an ordered list of stages
- Runs each stage on the sheet produced by the previous one
- Delegates every file write to the status package

🔄 Flow:
1. Plan picks the enabled stages from the config
2. The rename stage plans all copies before making any
3. Each stage returns a new sheet; its input is never modified
4. The runner commits the copies, or rolls them back on failure

⚡ Guarantees:
- Colliding targets fail before the first copy
- Existing targets fail too, unless overwriteFiles is set
- A failed run leaves no new file behind and never writes the target sheet
- Dry runs compute everything and write nothing

🔍 Example:

	ctx = log.NewContext(ctx, log.New(os.Stdout, logger))
	files := status.New(&logger)
	ops, err := operation.Plan(operation.Options{
		Config: cfg,
		Files:  files,
	})
	out, err := operation.NewRunner(&logger, files).Run(ctx, in, ops)
*/
package operation
