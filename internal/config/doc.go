// Package config provides configuration parsing for vdiff.
//
// The configuration is stored in vdiff.json. Every field is optional; a
// missing field keeps its default.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "maxMessageSize": 1048576,
//	    "allowedOrigins": ["https://example.com"]
//	  },
//	  "render": { "pretty": true, "indent": "  " },
//	  "metrics": { "enabled": true, "namespace": "vdiff", "path": "/metrics" },
//	  "log": { "level": "info", "format": "json" },
//	  "diff": { "identityAttr": "data-section-id", "verify": true }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
