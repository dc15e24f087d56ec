// Package utils exposes reusable helpers consumed by the spellscan commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, together with the
// command context accessor and the flushing writer used for report output.
package utils
