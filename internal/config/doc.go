// Package config handles configuration loading for concierge-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${CONCIERGE_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	dispatch:
//	  request_timeout: "10s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	  allowed_origins:
//	    - "https://app.example.com"
//
// Database:
//
//	database:
//	  path: "/var/lib/concierge/gateway.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${CONCIERGE_JWT_SECRET}"
//
// Agent dispatch:
//
//	dispatch:
//	  request_timeout: "10s"
//	  response_topic: "agent-responses"
//
// Intent routes (optional, built-in defaults cover every intent):
//
//	routes:
//	  topics:
//	    booking: "booking-agent-requests"
//	  default: "general-agent-requests"
//
// Intent classifier (api_key empty means keyword matching only):
//
//	classifier:
//	  model: "gemini-2.0-flash"
//	  api_key: "${GEMINI_API_KEY}"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("/etc/concierge/gateway.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
