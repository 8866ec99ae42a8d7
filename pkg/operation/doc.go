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
Package operation implements the per-task retry-with-compensation policy at
the heart of gridq.

	Pending → Attempting → { Succeeded | Attempting (retry) | Abandoned }

	+-----------+   command    +----------+
	| Operation | -----------> |  Runner  |
	| (policy)  | <----------- | (gfal)   |
	+-----+-----+  exit code   +----------+
	      |
	      | nonzero exit (copy)
	      v
	compensating removal of the destination, then retry

🎯 Purpose:
- Drive one task to a terminal outcome: succeeded, failed or abandoned
- Copy: remove the possibly-partial destination before every retry, so a
  half-written object never survives under a name that looks complete
- Remove: treat the reserved missing-object exit code as success
- Translate context cancellation into an orderly abandonment

⚡ Key Responsibilities:
- Unbounded retry by default, faithful to the original transfer scripts;
  an optional limited policy adds a max attempt count and backoff
- No external-command failure ever escapes as an error — everything is
  logged and converted into a retry or a terminal outcome

📝 Design Philosophy:
Operations are deliberately ignorant of the queue and the worker pool. They
receive one immutable task, a runner and a policy, and report what happened.
That keeps the retry loop testable with a stub runner and keeps cancellation
handling in exactly one place per operation.
*/
package operation
