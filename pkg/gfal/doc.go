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
Package gfal wraps the external gfal2 command-line tools behind a small
runner interface.

	+-----------+   render    +-----------+   spawn    +------------+
	| Commands  | ----------> |  Runner   | ---------> | gfal-copy/ |
	| (template)|             | (process) |            |  gfal-rm   |
	+-----------+             +-----------+            +------------+

🎯 Purpose:
- Render copy/remove command lines from configurable templates
- Spawn one external process per invocation and capture stdout/stderr
- Report the raw exit status for the retry policy to interpret
- Terminate the in-flight process cooperatively on cancellation

📝 Design Philosophy:
The runner knows nothing about retries, compensation or success codes — it
only runs a command and reports what happened. Checksum verification is the
transfer tool's own business; gridq observes the final exit status and nothing
else. Command lines are split with shlex instead of being passed to a shell,
so storage URLs with special characters cannot be reinterpreted.
*/
package gfal
