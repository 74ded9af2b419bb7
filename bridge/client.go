package bridge

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Broker is the transport the bridge needs
type Broker interface {
	Connect() error
	Publish(topic string, payload []byte)
	Subscribe(topic string, handler func(topic string, payload []byte)) error
	Disconnect()
}

var _ Broker = (*Client)(nil)

// Client wraps the Paho MQTT client
type Client struct {
	client paho.Client
	broker string
	mu     sync.Mutex
}

// NewClient creates a client but does not connect
func NewClient(brokerURL, clientID string) *Client {
	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	return &Client{
		client: paho.NewClient(opts),
		broker: brokerURL,
	}
}

// Connect attempts to connect without blocking indefinitely
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt connect to %s: timeout", c.broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", c.broker, err)
	}
	return nil
}

// Publish sends without waiting for the broker acknowledgement
func (c *Client) Publish(topic string, payload []byte) {
	token := c.client.Publish(topic, 1, false, payload)
	go func() {
		if token.WaitTimeout(10*time.Second) && token.Error() != nil {
			log.Printf("mqtt: publish %s: %v", topic, token.Error())
		}
	}()
}

// Subscribe registers a handler for a topic filter
func (c *Client) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Subscribe(topic, 1, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt subscribe %s: timeout", topic)
	}
	return token.Error()
}

// Disconnect cleanly disconnects from the broker
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.client.Disconnect(1000)
}
