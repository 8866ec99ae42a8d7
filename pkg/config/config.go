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

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/gfal"
	"github.com/walteh/gridq/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// Retry modes accepted in the retry block.
const (
	RetryModeForever = "forever"
	RetryModeLimited = "limited"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 CopyArgs configures the production copy run
type CopyArgs struct {
	InputPrefix  string `json:"input_prefix" yaml:"input_prefix" hcl:"input_prefix"`
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix" hcl:"output_prefix"`
	OldDirectory string `json:"old_directory" yaml:"old_directory" hcl:"old_directory"`
	NewDirectory string `json:"new_directory" yaml:"new_directory" hcl:"new_directory"`
}

// 🔧 StressArgs configures the cycled test-transfer run
type StressArgs struct {
	InputPrefix  string `json:"input_prefix" yaml:"input_prefix" hcl:"input_prefix"`
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix" hcl:"output_prefix"`
	NewDirectory string `json:"new_directory" yaml:"new_directory" hcl:"new_directory"`
	Transfers    int    `json:"transfers,omitempty" yaml:"transfers,omitempty" hcl:"transfers,optional"`
	Extension    string `json:"extension,omitempty" yaml:"extension,omitempty" hcl:"extension,optional"`
}

// 🔧 RemoveArgs configures the removal run
type RemoveArgs struct {
	StoragePrefix string `json:"storage_prefix" yaml:"storage_prefix" hcl:"storage_prefix"`
}

// 🔧 ToolArgs overrides the external command templates
type ToolArgs struct {
	CopyCommand     string `json:"copy_command,omitempty" yaml:"copy_command,omitempty" hcl:"copy_command,optional"`
	RemoveCommand   string `json:"remove_command,omitempty" yaml:"remove_command,omitempty" hcl:"remove_command,optional"`
	MissingExitCode int    `json:"missing_exit_code,omitempty" yaml:"missing_exit_code,omitempty" hcl:"missing_exit_code,optional"`
}

// 🔧 RetryArgs selects the retry policy
type RetryArgs struct {
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	MaxAttempts int    `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" hcl:"max_attempts,optional"`
	Backoff     string `json:"backoff,omitempty" yaml:"backoff,omitempty" hcl:"backoff,optional"`

	backoff time.Duration // parsed by Validate
}

// 📚 Config represents the complete configuration
type Config struct {
	Workers  int        `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	DryRun   bool       `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Filelist string     `json:"filelist,omitempty" yaml:"filelist,omitempty" hcl:"filelist,optional"`
	Include  []string   `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude  []string   `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Copy     *CopyArgs  `json:"copy,omitempty" yaml:"copy,omitempty" hcl:"copy,block"`
	Stress   *StressArgs `json:"stress,omitempty" yaml:"stress,omitempty" hcl:"stress,block"`
	Remove   *RemoveArgs `json:"remove,omitempty" yaml:"remove,omitempty" hcl:"remove,block"`
	Tools    *ToolArgs   `json:"tools,omitempty" yaml:"tools,omitempty" hcl:"tools,block"`
	Retry    *RetryArgs  `json:"retry,omitempty" yaml:"retry,omitempty" hcl:"retry,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 15
	}

	if cfg.Copy != nil {
		if cfg.Copy.OldDirectory == "" {
			return errors.New("copy.old_directory is required")
		}
		if cfg.Copy.NewDirectory == "" {
			return errors.New("copy.new_directory is required")
		}
	}

	if cfg.Stress != nil {
		if cfg.Stress.Transfers == 0 {
			cfg.Stress.Transfers = 1000
		}
		if cfg.Stress.Transfers < 0 {
			return errors.Errorf("stress.transfers must be positive, got %d", cfg.Stress.Transfers)
		}
		if cfg.Stress.Extension == "" {
			cfg.Stress.Extension = ".file"
		}
	}

	if cfg.Retry == nil {
		cfg.Retry = &RetryArgs{Mode: RetryModeForever}
	}
	if cfg.Retry.Mode == "" {
		cfg.Retry.Mode = RetryModeForever
	}
	switch cfg.Retry.Mode {
	case RetryModeForever:
		// MaxAttempts and Backoff are ignored; unbounded retry with no
		// backoff is the historical behavior and stays the default.
	case RetryModeLimited:
		if cfg.Retry.MaxAttempts <= 0 {
			return errors.New("retry.max_attempts must be positive in limited mode")
		}
	default:
		return errors.Errorf("unknown retry mode %q", cfg.Retry.Mode)
	}
	if cfg.Retry.Backoff != "" {
		backoff, err := time.ParseDuration(cfg.Retry.Backoff)
		if err != nil {
			return errors.Errorf("parsing retry.backoff: %w", err)
		}
		if backoff < 0 {
			return errors.Errorf("retry.backoff must not be negative, got %s", backoff)
		}
		cfg.Retry.backoff = backoff
	}

	return nil
}

// 🧰 Commands builds the command renderer from the tools block
func (cfg *Config) Commands() gfal.Commands {
	cmds := gfal.Commands{DryRun: cfg.DryRun}
	if cfg.Tools != nil {
		cmds.CopyTemplate = cfg.Tools.CopyCommand
		cmds.RemoveTemplate = cfg.Tools.RemoveCommand
		cmds.MissingCode = cfg.Tools.MissingExitCode
	}
	return cmds.WithDefaults()
}

// 🔁 RetryPolicy builds the retry policy from the retry block. Validate must
// have run first.
func (cfg *Config) RetryPolicy() operation.Retry {
	if cfg.Retry == nil || cfg.Retry.Mode == RetryModeForever {
		return operation.RetryForever()
	}
	return operation.Retry{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     cfg.Retry.backoff,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := RetryModeForever
	if cfg.Retry != nil && cfg.Retry.Mode != "" {
		mode = cfg.Retry.Mode
	}
	return fmt.Sprintf("%d workers, dry_run=%t, retry=%s", cfg.Workers, cfg.DryRun, mode)
}
