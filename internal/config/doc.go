// Package config loads attesta configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// collector configuration.
package config
