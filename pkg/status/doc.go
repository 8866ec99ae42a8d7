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
Package status tracks per-task outcomes and run progress for gridq.

	+---------+   Track    +----------+   Summary   +--------------+
	| Workers | ---------> | Manager  | ----------> | Orchestrator |
	+---------+            +----------+             +--------------+

🎯 Purpose:
- Record the lifecycle of every task (queued → attempting → terminal)
- Aggregate run counts: succeeded, failed, abandoned, skipped
- Emit consistent progress log lines across concurrent workers

📝 Design Philosophy:
The manager is pure bookkeeping — it never influences retries or
cancellation. The source scripts only exposed outcomes through their logs;
the Summary type makes the same information available programmatically
without changing the retry/cancellation contract.
*/
package status
