// Package file stores settings as TOML in config.toml under the data
// directory (~/.documind unless overridden).
package file
