// Package config loads the process-wide logging configuration from the
// environment.
//
// Load reads the variables once through a private viper instance and
// validates them with ozzo-validation. Invalid values never fail the
// load: the affected setting keeps its default and a message is added
// to Config.Warnings so the caller can report it through the logger it
// is about to build.
//
// Recognised variables:
//
//	LOG_LEVEL             severity name; overrides the profile default
//	SLACK_WEBHOOK_URL     http(s) address for critical alerts
//	LOG_FILE              optional file receiving a copy of every record
//	LOG_FILE_MAX_SIZE     rotation size in bytes (default 100 MiB)
//	LOG_FILE_MAX_BACKUPS  rotated files to keep (default 5)
//	LOG_COLOR             auto, always or never (default auto)
//	ALERT_TIMEOUT         per-alert delivery timeout (default 5s)
//	ALERT_RATE_LIMIT      alerts per minute, 0 for unlimited (default 0)
package config
