// Package config holds the exploration settings: defaults, validation,
// the optional .webexplore YAML file with per-site overrides, and XDG
// directory resolution for the history database.
package config
