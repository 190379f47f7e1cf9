// Package config loads and saves stagekit.json, the project configuration
// consumed by the CLI and the state server.
package config
