/*
Package config manages configuration parsing and validation for gridq.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values and fills defaults
- Converts the tools and retry blocks into runtime policies
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Validates configuration values
4. Hands the validated config to the commands

⚡ Key Responsibilities:
- Configuration parsing
- Schema validation
- Default value management (worker count, transfer count, retry mode)
- Format abstraction

📝 Design Philosophy:
The config package is the source of truth for all configuration. Each run
mode (copy, stress, remove) reads its own block; the shared knobs (workers,
dry_run, filelist, globs) live at the top level so one config file can drive
all three commands against the same filelist.

🔍 Example:

	cfg, err := config.Load(ctx, ".gridq.hcl")
	if err != nil {
		return err
	}
	cmds := cfg.Commands()      // rendered gfal command templates
	retry := cfg.RetryPolicy()  // forever or limited
*/
package config
