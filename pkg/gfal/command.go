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

package gfal

import "strings"

// Default command templates, matching the gfal2 CLI tools.
const (
	DefaultCopyTemplate   = "gfal-copy {dry_run} --force {source} {destination} --checksum-mode both"
	DefaultRemoveTemplate = "gfal-rm {dry_run} {target}"

	// DefaultMissingCode is the gfal-rm exit status for a target that does
	// not exist. Removing an already-absent file is not an error.
	DefaultMissingCode = 2

	dryRunFlag = "--dry-run"
)

// 🧰 Commands renders the external command lines for one run. Templates use
// {source}, {destination}, {target} and {dry_run} placeholders; {dry_run}
// expands to the dry-run flag or to nothing.
type Commands struct {
	CopyTemplate   string
	RemoveTemplate string
	MissingCode    int
	DryRun         bool
}

// 🛠️ WithDefaults fills empty fields with the gfal defaults.
func (c Commands) WithDefaults() Commands {
	if c.CopyTemplate == "" {
		c.CopyTemplate = DefaultCopyTemplate
	}
	if c.RemoveTemplate == "" {
		c.RemoveTemplate = DefaultRemoveTemplate
	}
	if c.MissingCode == 0 {
		c.MissingCode = DefaultMissingCode
	}
	return c
}

// 📋 Copy renders the primary copy command for a source/destination pair.
func (c Commands) Copy(source, destination string) string {
	return render(c.CopyTemplate, map[string]string{
		"{source}":      source,
		"{destination}": destination,
		"{dry_run}":     c.dryRunOption(),
	})
}

// 🗑️ Remove renders the removal command for a target, honoring dry-run mode.
func (c Commands) Remove(target string) string {
	return render(c.RemoveTemplate, map[string]string{
		"{target}":  target,
		"{dry_run}": c.dryRunOption(),
	})
}

// 🧹 Compensate renders the compensating removal issued against a destination
// after a failed copy attempt. The dry-run flag is never forwarded here: a
// failed real copy may have left a partial object that must actually go away.
func (c Commands) Compensate(target string) string {
	return render(c.RemoveTemplate, map[string]string{
		"{target}":  target,
		"{dry_run}": "",
	})
}

func (c Commands) dryRunOption() string {
	if c.DryRun {
		return dryRunFlag
	}
	return ""
}

func render(template string, values map[string]string) string {
	pairs := make([]string, 0, 2*len(values))
	for placeholder, value := range values {
		pairs = append(pairs, placeholder, value)
	}
	rendered := strings.NewReplacer(pairs...).Replace(template)
	return strings.Join(strings.Fields(rendered), " ")
}
