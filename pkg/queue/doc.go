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
Package queue holds the shared pending-work container that every gridq run
drains.

	+-----------+     Enqueue      +---------+
	| Producer  | ---------------> |  Queue  |
	+-----------+                  +----+----+
	                                    | TryDequeue
	                 +------------------+------------------+
	                 |                  |                  |
	            +----+----+        +----+----+        +----+----+
	            | Worker 0|        | Worker 1|        | Worker N|
	            +---------+        +---------+        +---------+

🎯 Purpose:
- FIFO ordering of pending tasks
- Outstanding-count tracking so the orchestrator can wait for drain
- Exactly-once hand-off of each task to a single worker

🔄 Flow:
1. The orchestrator enqueues the full task list up front
2. Workers pull with TryDequeue until the queue is empty
3. Workers call MarkDone after completing a task
4. The orchestrator suspends on WaitDrained until the last MarkDone

📝 Design Philosophy:
A task is in exactly one of three states: pending (in the queue), in flight
(held by one worker), or completed. The queue never blocks a worker waiting
for more work — an empty queue ends the worker's loop. Abandoned tasks are
never marked done, so an interrupted run leaves the outstanding count nonzero
on purpose.
*/
package queue
