package mqtt

// MQTTClient is what the Home Assistant integration needs from the bridge.
type MQTTClient interface {
	GetPrefix() string
	Topics() *Topics
	Publish(topic string, payload interface{}, retain bool)
}
