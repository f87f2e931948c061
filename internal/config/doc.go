// Package config provides centralized configuration management for the ASRS
// analysis service. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ASRS_* for namespacing, with
// nested sections joined by underscores:
//
//	ASRS_SERVER_PORT=8080
//	ASRS_PATHS_UPLOADS_DIR=/var/lib/asrspulse/uploads
//	ASRS_LOGGING_LEVEL=info
//	ASRS_ANALYSIS_SEED=42
//
// # Configuration File
//
// An optional YAML file (path taken from ASRS_CONFIG_FILE, default
// config.yaml) fills in values the environment leaves unset:
//
//	server:
//	  port: 8080
//	logging:
//	  level: info
//	  format: json
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Ports and timeouts are within acceptable ranges
//	- Analysis parameters (max features, topics, seed) are sane
//	- Working directories exist or can be created
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
