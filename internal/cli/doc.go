// Package cli provides command-line interface setup and configuration
// for the sheetlate application. It handles flag parsing, command
// creation, configuration management using cobra and viper, .env loading
// and the run logger.
package cli
