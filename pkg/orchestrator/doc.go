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
Package orchestrator assembles one queue run from its parts.

	Producer → Queue → Workers → Operation → external command
	               ↖ MarkDone ↙
	          WaitDrained (orchestrator)

🎯 Purpose:
- Build the full task list from a producer
- Enqueue everything, spawn the fixed worker pool, suspend on drain
- On cancellation, let the shared context stop the workers, then wait for
  every one of them to unwind before returning

🔄 Flow:
1. Producer yields the task list (plain list, directory rewrite, or cycled
   UUID generation — the run does not care which)
2. All tasks are enqueued before any worker starts
3. Workers race to drain the queue; completion order is unordered
4. The orchestrator wakes on the last MarkDone, or on interruption

📝 Design Philosophy:
The copy, stress and remove commands used to be three near-identical
pipelines. Here they are three producers and two operations around one
shared queue/worker core; the orchestrator is the only place that knows how
the pieces connect.
*/
package orchestrator
