// Package config loads runtime configuration for the diary CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-k string   invite link (or bare "?key=..." query) checked at startup
//	-p string   group invite policy: "owner" or "member"
//	-l string   log level: debug, info, warn, error
//	-t int      enhancer call timeout (seconds)
//
// # JSON schema
//
// Every key is optional; missing keys keep their previous value. Durations
// use timex.Duration, so "15s" and integer nanoseconds are both accepted:
//
//	{
//	  "database_path": "diary.db",
//	  "access_code": "2010",
//	  "admin_code": "1803",
//	  "invite_policy": "owner",
//	  "log_level": "warn",
//	  "enhancer_model": "gemini-3-flash-preview",
//	  "enhancer_api_key": "",
//	  "enhance_timeout": "15s",
//	  "seed_demo": true
//	}
//
// The secret codes are deliberately absent from the flag set so they do not
// show up in shell history. The enhancer client additionally honours the
// GEMINI_API_KEY environment variable when no key is configured.
package config
