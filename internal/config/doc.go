// Package config loads and validates application settings from a config
// file and environment variables: server, database, auth, and academic
// defaults such as the period assigned to auto-created curricula.
package config
