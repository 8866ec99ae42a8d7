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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: "config.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: "config.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_file",
			filename: ".gridq.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "unknown_extension",
			filename: "config.txt",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			assert.IsType(t, tt.want, got, "selected parser should match the extension")
		})
	}
}

// 🧪 TestYAMLParse tests parsing a full YAML config
func TestYAMLParse(t *testing.T) {
	data := []byte(`workers: 4
dry_run: true
filelist: files.txt
include:
  - "**/*.root"
copy:
  input_prefix: gsiftp://old.site
  output_prefix: gsiftp://new.site
  old_directory: /old/
  new_directory: /new/
tools:
  missing_exit_code: 7
retry:
  mode: limited
  max_attempts: 3
  backoff: 2s
`)

	cfg, err := (&YAMLParser{}).Parse(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "files.txt", cfg.Filelist)
	assert.Equal(t, []string{"**/*.root"}, cfg.Include)
	require.NotNil(t, cfg.Copy)
	assert.Equal(t, "/old/", cfg.Copy.OldDirectory)
	require.NotNil(t, cfg.Retry)
	assert.Equal(t, RetryModeLimited, cfg.Retry.Mode)

	retry := cfg.RetryPolicy()
	assert.False(t, retry.Forever)
	assert.Equal(t, 3, retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, retry.Backoff, "the backoff string should be parsed")

	cmds := cfg.Commands()
	assert.Equal(t, 7, cmds.MissingCode, "tools overrides should reach the command renderer")
	assert.True(t, cmds.DryRun, "dry-run mode should reach the command renderer")
}

// 🧪 TestYAMLParseUnknownField tests that typos are rejected
func TestYAMLParseUnknownField(t *testing.T) {
	_, err := (&YAMLParser{}).Parse(context.Background(), []byte("workerz: 4\n"))
	assert.Error(t, err, "unknown keys should be rejected, not silently dropped")
}

// 🧪 TestHCLParse tests parsing a full HCL config
func TestHCLParse(t *testing.T) {
	data := []byte(`
workers  = 8
filelist = "files.txt"

stress {
  input_prefix  = "gsiftp://src.site"
  output_prefix = "gsiftp://dst.site"
  new_directory = "loadtest"
  transfers     = 500
  extension     = ".root"
}

remove {
  storage_prefix = "gsiftp://dst.site"
}
`)

	cfg, err := (&HCLParser{}).Parse(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	require.NotNil(t, cfg.Stress)
	assert.Equal(t, 500, cfg.Stress.Transfers)
	assert.Equal(t, ".root", cfg.Stress.Extension)
	require.NotNil(t, cfg.Remove)
	assert.Equal(t, "gsiftp://dst.site", cfg.Remove.StoragePrefix)
	require.NotNil(t, cfg.Retry, "validation should install the default retry block")
	assert.True(t, cfg.RetryPolicy().Forever, "retry should default to the unbounded policy")
}

// 🧪 TestHCLParseInvalid tests HCL syntax error reporting
func TestHCLParseInvalid(t *testing.T) {
	_, err := (&HCLParser{}).Parse(context.Background(), []byte("workers = {{"))
	assert.Error(t, err, "malformed HCL should be reported")
}

// 🧪 TestValidate tests defaults and rejection rules
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			cfg:  Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 15, cfg.Workers, "worker count should default")
				assert.Equal(t, RetryModeForever, cfg.Retry.Mode, "retry should default to forever")
			},
		},
		{
			name:    "negative_workers",
			cfg:     Config{Workers: -1},
			wantErr: true,
		},
		{
			name:    "copy_without_old_directory",
			cfg:     Config{Copy: &CopyArgs{NewDirectory: "/new/"}},
			wantErr: true,
		},
		{
			name: "stress_defaults",
			cfg:  Config{Stress: &StressArgs{}},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1000, cfg.Stress.Transfers, "transfer count should default")
				assert.Equal(t, ".file", cfg.Stress.Extension, "extension should default")
			},
		},
		{
			name:    "limited_retry_without_attempts",
			cfg:     Config{Retry: &RetryArgs{Mode: RetryModeLimited}},
			wantErr: true,
		},
		{
			name:    "unknown_retry_mode",
			cfg:     Config{Retry: &RetryArgs{Mode: "sometimes"}},
			wantErr: true,
		},
		{
			name:    "bad_backoff",
			cfg:     Config{Retry: &RetryArgs{Mode: RetryModeForever, Backoff: "soon"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err, "invalid config should be rejected")
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, &tt.cfg)
			}
		})
	}
}

// 🧪 TestLoad tests end-to-end loading from disk
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "a missing file should be reported")

	unknown := filepath.Join(dir, "gridq.toml")
	require.NoError(t, os.WriteFile(unknown, []byte(""), 0o644))
	_, err = Load(context.Background(), unknown)
	assert.Error(t, err, "an unsupported format should be reported")
}
