package pubsub

const (
	// ChannelPrefix prefixes Redis channels; the event type is appended.
	ChannelPrefix = "blog:events:"

	// DefaultTopic is the Kafka topic carrying every event type.
	DefaultTopic = "blog-events"
)

// ChannelFor returns the Redis channel an event type is published on.
func ChannelFor(eventType string) string {
	return ChannelPrefix + eventType
}
