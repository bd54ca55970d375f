// Package config loads stories configuration.
//
// # Sources
//
// Values are read with viper from, in increasing precedence:
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/stories/config.toml
//  3. STORIES_* environment variables, with dots in keys replaced by
//     underscores (STORIES_LOG_LEVEL overrides log.level)
//
// A missing config file is not an error. Empty values fall back to the
// defaults.
//
// # TOML Format
//
//	endpoint = "https://hn.algolia.com/api/v1/search?query="
//	schema = "stories"          # or "books"
//	default_term = "React"
//	request_timeout = "5s"
//	theme = "Nightfox"
//
//	[storage]
//	driver = "toml"             # toml, sqlite or memory
//	path = ""                   # empty uses the driver default
//
//	[log]
//	path = "~/.local/state/stories/stories.log"
//	level = "info"
//
// Tilde paths are expanded and relative paths are made absolute. The
// endpoint is returned as written; callers validate it with
// catalog.ParseEndpoint.
package config
