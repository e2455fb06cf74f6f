// Package config loads and validates the POS back office configuration.
//
// Configuration is read from a YAML file, with environment variables
// (POSDESK_SECTION_KEY) overriding individual values. Secrets such as the
// MQTT password and the seed admin PIN should always come from the
// environment rather than the file.
package config
