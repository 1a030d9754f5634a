// Package config provides centralized configuration for the report filler.
// It loads configuration from multiple sources, validates it, and carries
// the rule tables the report engine consumes.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml or configs/config.yaml
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern UTREPORT_* for namespacing:
//
//	UTREPORT_LOGGING_LEVEL=debug
//	UTREPORT_LOGGING_OUTPUT=stdout
//	UTREPORT_LOGGING_FILE_PATH=logs/fillreport.log
//
// # Rule Tables
//
// Beyond the ambient settings, the package ships the report rules as data:
// the label vocabulary and field labels driving document extraction, the
// probe selection intervals per weld type, the basis-code slot map, the
// monthly mean temperatures and the template cell layout. A template
// revision is a config change, not a code change.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
