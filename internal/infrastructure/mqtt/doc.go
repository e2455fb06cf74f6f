// Package mqtt relays catalog and staff change events to an MQTT broker
// for external integrations. The relay is optional and best effort:
// WebSocket clients are the primary consumers of change events, and a
// broker outage never blocks or fails an API write.
package mqtt
