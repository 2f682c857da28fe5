// Package homeassistant publishes MQTT discovery configs so each sign shows
// up in Home Assistant as a device.
package homeassistant

import (
	"encoding/json"
	"fmt"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/mqtt"
)

type HomeAssistant struct {
	config *config.HomeAssistantConfig
	mqtt   mqtt.MQTTClient
	signs  []config.SignConfig
	log    *log.Logger
}

func New(cfg *config.HomeAssistantConfig, mqttClient mqtt.MQTTClient, signs []config.SignConfig, logger *log.Logger) *HomeAssistant {
	return &HomeAssistant{
		config: cfg,
		mqtt:   mqttClient,
		signs:  signs,
		log:    logger.With("source", "homeassistant"),
	}
}

func (ha *HomeAssistant) Start() {
	ha.log.Info("Starting Home Assistant integration")
	for _, sign := range ha.signs {
		ha.publishSignConfig(sign)
	}
}

func (ha *HomeAssistant) publishSignConfig(sign config.SignConfig) {
	state := ha.mqtt.Topics().Sign(sign)

	ha.publishConfig("sensor", objectID(sign, "message"), map[string]interface{}{
		"name":           "Message",
		"icon":           "mdi:message-text",
		"value_template": "{{ value_json.status.currentMessage.message | default('') }}",
	}, sign, state)

	ha.publishConfig("sensor", objectID(sign, "brightness"), map[string]interface{}{
		"name":            "Brightness",
		"icon":            "mdi:brightness-6",
		"state_class":     "measurement",
		"value_template":  "{{ value_json.status.statusIlluminationBrightnessLevel }}",
		"entity_category": "diagnostic",
	}, sign, state)

	ha.publishConfig("binary_sensor", objectID(sign, "online"), map[string]interface{}{
		"name":           "Online",
		"device_class":   "connectivity",
		"value_template": "{{ 'ON' if value_json.online else 'OFF' }}",
		"payload_on":     "ON",
		"payload_off":    "OFF",
	}, sign, state)
}

func (ha *HomeAssistant) publishConfig(component, objectId string, entity map[string]interface{}, sign config.SignConfig, stateTopic string) {
	topic := fmt.Sprintf("%s/%s/%s/%s/config", ha.config.Prefix, component, ha.mqtt.GetPrefix(), objectId)

	entity["unique_id"] = fmt.Sprintf("%s_%s", ha.mqtt.GetPrefix(), objectId)
	entity["state_topic"] = stateTopic
	entity["availability_topic"] = ha.mqtt.Topics().Status()
	entity["device"] = deviceInfo(sign)

	payload, err := json.Marshal(entity)
	if err != nil {
		ha.log.Error("Failed to marshal Home Assistant config: %v", err)
		return
	}

	ha.mqtt.Publish(topic, string(payload), true)
}
