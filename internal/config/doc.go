// Package config provides configuration management for the remediator.
//
// Configuration comes from three places, in increasing precedence: built-in
// defaults, an optional .remediator YAML file (per-document overrides), and
// CLI flags. The Config struct is populated once after flag parsing,
// validated, and passed through the application via dependency injection
// rather than global state.
package config
