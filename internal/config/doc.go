// Package config loads application configuration.
//
// # Configuration Sources
//
// Sources are applied in this order, each overriding the previous:
//
//  1. Default values (Default)
//  2. A YAML file: $PGCET_CONFIG_FILE, else config.yaml or configs/config.yaml
//  3. Environment variables prefixed PGCET_
//
// Nested sections map onto underscore-joined names:
//
//	PGCET_SERVER_PORT=9090
//	PGCET_LOGGING_LEVEL=debug
//	PGCET_UPLOAD_MAX_BYTES=5242880
//	PGCET_ANALYSIS_HIGH_VACANCY_PCT=25
//	PGCET_TELEMETRY_TRACING_ENABLED=true
//
// The equivalent YAML:
//
//	server:
//	  port: 9090
//	analysis:
//	  high_vacancy_pct: 25
//
// The analysis section is an efficiency.Policy and is validated with the
// same rules the analyzer applies.
package config
