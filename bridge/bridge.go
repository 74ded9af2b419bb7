// Package bridge mirrors script broadcasts over MQTT. Inbound messages on
// <prefix>/broadcast/<message> are queued for the host loop; outbound
// broadcasts publish on the same topic.
package bridge

import (
	"log"
	"strings"
	"sync"
)

// Config holds MQTT settings
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	BrokerURL string `yaml:"broker_url"`
	Prefix    string `yaml:"prefix"`
	ClientID  string `yaml:"client_id"`
}

// DefaultConfig returns the disabled default
func DefaultConfig() Config {
	return Config{
		BrokerURL: "tcp://localhost:1883",
		Prefix:    "blockstage",
		ClientID:  "blockstage",
	}
}

// inboxSize bounds queued inbound messages; extras are dropped
const inboxSize = 64

// Topic builds the broadcast topic for a message
func Topic(prefix, msg string) string {
	return strings.TrimSuffix(prefix, "/") + "/broadcast/" + msg
}

// ParseTopic extracts the message from a broadcast topic
func ParseTopic(prefix, topic string) (string, bool) {
	msg, ok := strings.CutPrefix(topic, strings.TrimSuffix(prefix, "/")+"/broadcast/")
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

// Bridge queues inbound broadcasts and publishes outbound ones
type Bridge struct {
	broker Broker
	prefix string
	origin string // payload marking our own publishes

	mu    sync.Mutex
	inbox []string
}

// New creates a bridge over a broker; Start connects it
func New(broker Broker, cfg Config) *Bridge {
	return &Bridge{broker: broker, prefix: cfg.Prefix, origin: cfg.ClientID}
}

// Start connects and subscribes. Failure leaves the bridge offline.
func (b *Bridge) Start() error {
	if err := b.broker.Connect(); err != nil {
		return err
	}
	filter := Topic(b.prefix, "#")
	if err := b.broker.Subscribe(filter, b.receive); err != nil {
		return err
	}
	log.Printf("mqtt: subscribed to %s", filter)
	return nil
}

// Stop disconnects
func (b *Bridge) Stop() {
	b.broker.Disconnect()
}

// Publish sends a script broadcast
func (b *Bridge) Publish(msg string) {
	b.broker.Publish(Topic(b.prefix, msg), []byte(b.origin))
}

// Drain returns and clears the queued inbound messages
func (b *Bridge) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.inbox
	b.inbox = nil
	return out
}

func (b *Bridge) receive(topic string, payload []byte) {
	msg, ok := ParseTopic(b.prefix, topic)
	if !ok || (b.origin != "" && string(payload) == b.origin) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.inbox) >= inboxSize {
		log.Printf("mqtt: inbox full, dropping %q", msg)
		return
	}
	b.inbox = append(b.inbox, msg)
}
