// Package config provides runtime configuration for the Twenty48 server.
//
// Configuration is read from environment variables, with an optional .env
// file in the working directory loaded first. Every variable has a sensible
// default, so a bare `twenty48 serve` works with no environment at all.
//
// Variables:
//
//   - TWENTY48_HOST             HTTP bind host (default "localhost")
//   - TWENTY48_PORT             HTTP bind port (default 8080)
//   - TWENTY48_DEBUG            verbose logging with file:line (default false)
//   - TWENTY48_SESSION_TTL      idle session retention (default 24h)
//   - TWENTY48_CLEANUP_INTERVAL session reaper period (default 1h)
//   - NGROK_ENABLED             expose the server through an ngrok tunnel
//   - NGROK_AUTHTOKEN           ngrok credentials (NGROK_AUTH_TOKEN also works)
//   - NGROK_DOMAIN              optional custom ngrok domain
//
// Command-line flags may override individual fields after Load; the config
// struct is plain data and carries no behavior beyond address formatting.
package config
