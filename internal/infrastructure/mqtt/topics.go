package mqtt

import "fmt"

// Topic namespace for the POS back office.
//
// Structure:
//
//	posdesk/events/{entity}/{op}  - catalog and staff change events
//	posdesk/system/status         - online/offline status (retained, LWT)
const (
	topicPrefix = "posdesk"

	// StatusTopic carries the retained online/offline payload. The broker
	// publishes "offline" here via Last Will if the process dies.
	StatusTopic = topicPrefix + "/system/status"
)

// EventTopic returns the topic for a change event, e.g.
// EventTopic("category", "created") -> "posdesk/events/category/created".
func EventTopic(entity, op string) string {
	return fmt.Sprintf("%s/events/%s/%s", topicPrefix, entity, op)
}
