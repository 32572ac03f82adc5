// Package config loads environment-based configuration structs using
// `env` struct tags, with optional .env file support for development.
//
// Configuration is cached per struct type: the first Load parses the
// environment, later calls return the cached copy. This keeps every
// consumer of a shared config (mongo, email, sms) looking at the same
// values without plumbing instances around.
package config
