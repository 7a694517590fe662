// Package logger wraps zap with:
//   - a global sugared logger writing colored console output to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - leveled helpers (Info, InfoKV, ErrorKV, etc.).
//
// Services accept a context and log through it so that names and key/value
// pairs attached upstream (architecture, work item) show up on every line.
package logger
