package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type published struct {
	topic   string
	retain  bool
	payload []byte
}

// fakeBroker is a connected paho client that records publishes.
type fakeBroker struct {
	mu         sync.Mutex
	published  []published
	subscribed []string
}

func (b *fakeBroker) IsConnected() bool      { return true }
func (b *fakeBroker) IsConnectionOpen() bool { return true }
func (b *fakeBroker) Connect() paho.Token    { return doneToken{} }
func (b *fakeBroker) Disconnect(uint)        {}

func (b *fakeBroker) Publish(topic string, _ byte, retained bool, payload interface{}) paho.Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, published{topic: topic, retain: retained, payload: payload.([]byte)})
	return doneToken{}
}

func (b *fakeBroker) Subscribe(topic string, _ byte, _ paho.MessageHandler) paho.Token {
	b.subscribed = append(b.subscribed, topic)
	return doneToken{}
}

func (b *fakeBroker) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return doneToken{}
}
func (b *fakeBroker) Unsubscribe(...string) paho.Token        { return doneToken{} }
func (b *fakeBroker) AddRoute(string, paho.MessageHandler)    {}
func (b *fakeBroker) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }

func (b *fakeBroker) last(topic string) (published, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.published) - 1; i >= 0; i-- {
		if b.published[i].topic == topic {
			return b.published[i], true
		}
	}
	return published{}, false
}

type message struct {
	topic   string
	payload string
}

func (m message) Duplicate() bool   { return false }
func (m message) Qos() byte         { return 0 }
func (m message) Retained() bool    { return false }
func (m message) Topic() string     { return m.topic }
func (m message) MessageID() uint16 { return 1 }
func (m message) Payload() []byte   { return []byte(m.payload) }
func (m message) Ack()              {}

type fakeSigns struct {
	mu        sync.Mutex
	statusErr error
	calls     []string
	activated int
	on        bool
}

func (f *fakeSigns) GetStatus(_ context.Context, ip string) (*panel.SignStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "status "+ip)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &panel.SignStatus{SignWidth: 192, BrightnessLevel: 7}, nil
}

func (f *fakeSigns) ActivateMessage(_ context.Context, ip string, id int, activate bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "activate "+ip)
	f.activated, f.on = id, activate
	return nil
}

func (f *fakeSigns) RestartPanel(_ context.Context, ip string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "restart "+ip)
	return errors.New("boom")
}

var testSigns = []config.SignConfig{
	{Name: "Vía Norte Km 12", IP: "10.0.0.5"},
	{Name: "Acceso Sur", IP: "10.0.0.6"},
}

func newTestBridge() (*MQTT, *fakeBroker, *fakeSigns) {
	cfg := &config.MQTTConfig{Prefix: "pmv", QOS: 1}
	signs := &fakeSigns{}
	m := NewMQTT(cfg, testSigns, signs, log.Discard())
	broker := &fakeBroker{}
	m.client = broker
	m.now = func() time.Time { return time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC) }
	return m, broker, signs
}

func TestTopics(t *testing.T) {
	topics := NewTopics("pmv")
	if got := topics.Sign(testSigns[0]); got != "pmv/sign/via-norte-km-12" {
		t.Errorf("Sign = %q", got)
	}
	if got := topics.SignCommand(testSigns[1]); got != "pmv/sign/acceso-sur/command" {
		t.Errorf("SignCommand = %q", got)
	}
	if topics.Status() != "pmv/status" || topics.Events() != "pmv/events" {
		t.Errorf("Status, Events = %q, %q", topics.Status(), topics.Events())
	}
}

func TestBrokerURL(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 1883, "tcp://localhost:1883"},
		{"mqtt://broker", 1884, "tcp://broker:1884"},
		{"mqtt://broker:1999", 1883, "tcp://broker:1999"},
		{"ssl://broker", 8883, "ssl://broker:8883"},
		{"mqtts://broker:8884", 8883, "ssl://broker:8884"},
	}
	for _, tt := range tests {
		if got := BrokerURL(tt.host, tt.port); got != tt.want {
			t.Errorf("BrokerURL(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestOnConnect(t *testing.T) {
	m, broker, _ := newTestBridge()
	m.onConnect(broker)

	status, ok := broker.last("pmv/status")
	if !ok || string(status.payload) != "online" || !status.retain {
		t.Errorf("status = %+v", status)
	}
	if len(broker.subscribed) != 2 || broker.subscribed[0] != "pmv/sign/via-norte-km-12/command" {
		t.Errorf("subscribed = %v", broker.subscribed)
	}
}

func TestPublishSignStatus(t *testing.T) {
	m, broker, signs := newTestBridge()
	m.PublishSignStatus(context.Background(), testSigns[0])

	p, ok := broker.last("pmv/sign/via-norte-km-12")
	if !ok || !p.retain {
		t.Fatalf("sign state not published retained: %+v", p)
	}
	var state SignState
	if err := json.Unmarshal(p.payload, &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !state.Online || state.Status == nil || state.Status.SignWidth != 192 {
		t.Errorf("state = %+v", state)
	}

	signs.statusErr = &panel.Error{Kind: panel.NoResponseFromAgent}
	m.PublishSignStatus(context.Background(), testSigns[0])
	p, _ = broker.last("pmv/sign/via-norte-km-12")
	state = SignState{}
	if err := json.Unmarshal(p.payload, &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if state.Online || state.Error != "NO_RESPONSE_RECEIVED_FROM_SNMP_AGENT" || state.Status != nil {
		t.Errorf("offline state = %+v", state)
	}
}

func TestPublishEvent(t *testing.T) {
	m, broker, _ := newTestBridge()
	m.PublishEvent("write_message", "10.0.0.5", &panel.Error{Kind: panel.WrongMessageId})

	p, ok := broker.last("pmv/events")
	if !ok || p.retain {
		t.Fatalf("event = %+v", p)
	}
	var ev Event
	if err := json.Unmarshal(p.payload, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.ID == "" || ev.Op != "write_message" || ev.IP != "10.0.0.5" || ev.Result != "WRONG_MESSAGE_ID" {
		t.Errorf("event = %+v", ev)
	}
	if !ev.Time.Equal(time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("time = %v", ev.Time)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		payload   string
		wantCall  string
		activated int
		on        bool
		result    string
	}{
		{"activate 5", "activate 10.0.0.6", 5, true, "OK"},
		{"deactivate", "activate 10.0.0.6", 1, false, "OK"},
		{" deactivate 3 ", "activate 10.0.0.6", 3, false, "OK"},
		{"restart", "restart 10.0.0.6", 0, false, "EXCEPTION"},
	}
	for _, tt := range tests {
		m, broker, signs := newTestBridge()
		m.handleMessage(broker, message{topic: "pmv/sign/acceso-sur/command", payload: tt.payload})

		if len(signs.calls) == 0 || signs.calls[0] != tt.wantCall {
			t.Errorf("%q: calls = %v", tt.payload, signs.calls)
			continue
		}
		if signs.activated != tt.activated || signs.on != tt.on {
			t.Errorf("%q: activated %d (%v)", tt.payload, signs.activated, signs.on)
		}
		p, ok := broker.last("pmv/events")
		if !ok {
			t.Errorf("%q: no event", tt.payload)
			continue
		}
		var ev Event
		if err := json.Unmarshal(p.payload, &ev); err != nil || ev.Result != tt.result {
			t.Errorf("%q: event = %+v, %v", tt.payload, ev, err)
		}
		if _, ok := broker.last("pmv/sign/acceso-sur"); !ok {
			t.Errorf("%q: status not refreshed", tt.payload)
		}
	}
}

func TestIgnoredCommands(t *testing.T) {
	for _, payload := range []string{"", "activate", "activate x", "deactivate y", "dance"} {
		m, broker, signs := newTestBridge()
		m.handleMessage(broker, message{topic: "pmv/sign/acceso-sur/command", payload: payload})
		if len(signs.calls) != 0 || len(broker.published) != 0 {
			t.Errorf("%q: calls %v, published %d", payload, signs.calls, len(broker.published))
		}
	}

	m, broker, signs := newTestBridge()
	m.handleMessage(broker, message{topic: "pmv/sign/unknown/command", payload: "restart"})
	if len(signs.calls) != 0 {
		t.Errorf("unknown topic: calls %v", signs.calls)
	}
}

func TestPollStopsWithContext(t *testing.T) {
	m, broker, signs := newTestBridge()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Poll(ctx, time.Hour)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for {
		broker.mu.Lock()
		n := len(broker.published)
		broker.mu.Unlock()
		if n >= len(testSigns) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first poll did not publish")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Poll did not return after cancel")
	}
	signs.mu.Lock()
	defer signs.mu.Unlock()
	if len(signs.calls) != len(testSigns) {
		t.Errorf("calls = %v", signs.calls)
	}
}

func TestPublishWithoutClient(t *testing.T) {
	m := NewMQTT(&config.MQTTConfig{Prefix: "pmv"}, nil, &fakeSigns{}, log.Discard())
	m.PublishEvent("restart", "10.0.0.5", nil)
}
