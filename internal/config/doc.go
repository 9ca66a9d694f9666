// Package config loads beacon configuration: built-in defaults, an
// optional YAML file, then STB_* environment overrides, validated as a
// whole.
package config
