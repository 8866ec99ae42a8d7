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

package status

import (
	"fmt"
)

// Formatter defines how transfer status and progress should be formatted
type Formatter interface {
	// FormatTransfer formats a transfer status message
	FormatTransfer(lfn string, status TaskStatus) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatTransfer formats a transfer status message with emojis
func (f *DefaultFormatter) FormatTransfer(lfn string, status TaskStatus) string {
	switch status {
	case StatusQueued:
		return fmt.Sprintf("📥 Queued %s", lfn)
	case StatusAttempting:
		return fmt.Sprintf("🚚 Transferring %s", lfn)
	case StatusSucceeded:
		return fmt.Sprintf("✨ Done %s", lfn)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", lfn)
	case StatusAbandoned:
		return fmt.Sprintf("🛑 Abandoned %s", lfn)
	default:
		return fmt.Sprintf("❔ Unknown %s", lfn)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
