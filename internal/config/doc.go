// Package config handles configuration loading for tollgate.
//
// # Overview
//
// Configuration is loaded once at startup from a YAML or TOML file with
// environment variable expansion. It is never reloaded; the signing secret
// and cooldowns are fixed for the life of the process.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. --config flag
//  2. Path from TOLLGATE_CONFIG environment variable
//  3. $XDG_CONFIG_HOME/tollgate/config.yaml (or ~/.config/tollgate/config.yaml)
//
// Files ending in .toml are decoded as TOML; anything else as YAML.
//
// # Environment Variable Expansion
//
//	auth:
//	  jwt_secret: "${TOLLGATE_JWT_SECRET}"
//
// # Configuration Sections
//
//	server:
//	  http_addr: "0.0.0.0:3000"
//	  trust_forwarded_for: false
//
//	database:
//	  path: "/var/lib/tollgate/tollgate.db"
//
//	auth:
//	  jwt_secret: "${TOLLGATE_JWT_SECRET}"   # required, >= 32 bytes
//
//	rate_limit:
//	  address_cooldown: "5s"     # register/login, per client address
//	  principal_cooldown: "3s"   # /user/me, per authenticated user
//	  sweep_interval: ""         # empty = keep every key forever
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
// # Validation
//
// Load() requires server.http_addr, database.path and a jwt_secret of at
// least 32 bytes, and rejects non-positive cooldowns.
package config
