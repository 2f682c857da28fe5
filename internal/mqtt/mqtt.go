// Package mqtt bridges the configured signs to an MQTT broker: it polls
// their status, relays operation events and accepts simple commands.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

const (
	offlinePayload = "offline"
	onlinePayload  = "online"

	commandTimeout = 2 * time.Minute
)

// SignController is the part of the gateway the bridge drives.
type SignController interface {
	GetStatus(ctx context.Context, ip string) (*panel.SignStatus, error)
	ActivateMessage(ctx context.Context, ip string, id int, activate bool) error
	RestartPanel(ctx context.Context, ip string) error
}

// SignState is published retained on each sign topic after every poll.
type SignState struct {
	Name   string            `json:"name"`
	IP     string            `json:"ip"`
	Online bool              `json:"online"`
	Error  string            `json:"error,omitempty"`
	Status *panel.SignStatus `json:"status,omitempty"`
}

// Event reports the outcome of one write operation.
type Event struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Op     string    `json:"op"`
	IP     string    `json:"ip"`
	Result string    `json:"result"`
}

type MQTT struct {
	config *config.MQTTConfig
	signs  []config.SignConfig
	panel  SignController
	log    *log.Logger
	client mqtt.Client
	topics *Topics
	now    func() time.Time
	mu     sync.Mutex
}

func NewMQTT(cfg *config.MQTTConfig, signs []config.SignConfig, p SignController, logger *log.Logger) *MQTT {
	return &MQTT{
		config: cfg,
		signs:  signs,
		panel:  p,
		log:    logger.With("source", "mqtt"),
		topics: NewTopics(cfg.Prefix),
		now:    time.Now,
	}
}

func (m *MQTT) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(BrokerURL(m.config.Host, m.config.Port))
	opts.SetClientID(m.config.ClientID)
	opts.SetUsername(m.config.Username)
	opts.SetPassword(m.config.Password)
	opts.SetCleanSession(m.config.Clean)
	opts.SetKeepAlive(time.Duration(m.config.Keepalive) * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(m.onConnect)
	opts.SetConnectionLostHandler(m.onDisconnect)

	opts.SetWill(m.topics.Status(), offlinePayload, byte(m.config.QOS), m.config.Retain)

	opts.SetOrderMatters(false)

	client := mqtt.NewClient(opts)
	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	m.log.Info("Connected to MQTT broker: %s", BrokerURL(m.config.Host, m.config.Port))
	return nil
}

func (m *MQTT) onConnect(client mqtt.Client) {
	m.log.Info("MQTT connection established")
	m.publishOnlineStatus()
	m.subscribeTopics(client)
}

func (m *MQTT) onDisconnect(client mqtt.Client, err error) {
	m.log.Error("MQTT connection lost: %v", err)
}

func (m *MQTT) subscribeTopics(client mqtt.Client) {
	for _, sign := range m.signs {
		topic := m.topics.SignCommand(sign)
		token := client.Subscribe(topic, byte(m.config.QOS), m.handleMessage)
		if token.Wait() && token.Error() != nil {
			m.log.Error("Failed to subscribe to topic %s: %v", topic, token.Error())
		} else {
			m.log.Debug("Subscribed to topic: %s", topic)
		}
	}
}

func (m *MQTT) handleMessage(client mqtt.Client, msg mqtt.Message) {
	topic := msg.Topic()
	payload := strings.TrimSpace(string(msg.Payload()))

	m.log.Debug("Received message on topic %s: %s", topic, payload)

	for _, sign := range m.signs {
		if topic == m.topics.SignCommand(sign) {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			m.handleSignCommand(ctx, sign, payload)
			return
		}
	}
	m.log.Warn("Received message on unknown topic: %s", topic)
}

// handleSignCommand runs one of:
//
//	activate <n>
//	deactivate [n]
//	restart
func (m *MQTT) handleSignCommand(ctx context.Context, sign config.SignConfig, command string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		m.log.Warn("Empty command for sign %s", sign.Name)
		return
	}

	var (
		op  string
		err error
	)
	switch fields[0] {
	case "activate":
		if len(fields) != 2 {
			m.log.Warn("Command activate for sign %s needs a message number", sign.Name)
			return
		}
		id, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			m.log.Warn("Invalid message number %q for sign %s", fields[1], sign.Name)
			return
		}
		op = "activate_message"
		err = m.panel.ActivateMessage(ctx, sign.IP, id, true)
	case "deactivate":
		id := 1
		if len(fields) > 1 {
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				m.log.Warn("Invalid message number %q for sign %s", fields[1], sign.Name)
				return
			}
			id = n
		}
		op = "activate_message"
		err = m.panel.ActivateMessage(ctx, sign.IP, id, false)
	case "restart":
		op = "restart"
		err = m.panel.RestartPanel(ctx, sign.IP)
	default:
		m.log.Warn("Unknown sign command: %s", command)
		return
	}

	m.PublishEvent(op, sign.IP, err)
	m.PublishSignStatus(ctx, sign)
}

// Poll publishes every sign's state now and then every interval until ctx
// is done. Signs are polled one at a time.
func (m *MQTT) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		for _, sign := range m.signs {
			if ctx.Err() != nil {
				return
			}
			m.PublishSignStatus(ctx, sign)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *MQTT) PublishSignStatus(ctx context.Context, sign config.SignConfig) {
	state := SignState{Name: sign.Name, IP: sign.IP}
	status, err := m.panel.GetStatus(ctx, sign.IP)
	if err != nil {
		m.log.Warn("Sign %s did not report status: %v", sign.Name, err)
		state.Error = panel.KindOf(err).String()
	} else {
		state.Online = true
		state.Status = status
	}
	m.publish(m.topics.Sign(sign), state, true)
}

// PublishEvent implements the HTTP server's event sink.
func (m *MQTT) PublishEvent(op, ip string, err error) {
	m.publish(m.topics.Events(), Event{
		ID:     uuid.NewString(),
		Time:   m.now().UTC(),
		Op:     op,
		IP:     ip,
		Result: panel.KindOf(err).String(),
	}, false)
}

func (m *MQTT) publishOnlineStatus() {
	m.publish(m.topics.Status(), onlinePayload, true)
}

func (m *MQTT) GetPrefix() string {
	return m.config.Prefix
}

func (m *MQTT) Topics() *Topics {
	return m.topics
}

func (m *MQTT) Publish(topic string, payload interface{}, retain bool) {
	m.publish(topic, payload, retain)
}

// publish sends strings and byte slices as they are and JSON encodes
// anything else.
func (m *MQTT) publish(topic string, message interface{}, retain bool) {
	var payload []byte
	switch v := message.(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		var err error
		payload, err = json.Marshal(message)
		if err != nil {
			m.log.Error("Failed to marshal message for topic %s: %v", topic, err)
			return
		}
	}

	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		m.log.Debug("Not connected, dropping message for topic %s", topic)
		return
	}

	token := client.Publish(topic, byte(m.config.QOS), retain, payload)
	if token.Wait() && token.Error() != nil {
		m.log.Error("Failed to publish message to topic %s: %v", topic, token.Error())
	} else {
		m.log.Debug("Published message to topic: %s", topic)
	}
}

func (m *MQTT) Close() {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client != nil && client.IsConnected() {
		m.publish(m.topics.Status(), offlinePayload, true)
		client.Disconnect(250)
	}
}
