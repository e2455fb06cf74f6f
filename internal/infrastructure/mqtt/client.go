package mqtt

import (
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/posdesk/core/internal/infrastructure/config"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	keepAlive         = 60 * time.Second
	disconnectQuiesce = 1000 // milliseconds
	maxReconnectWait  = 2 * time.Minute
)

// Client is a publish-only MQTT connection used to relay change events
// to external integrations (kitchen displays, dashboards). The back
// office never subscribes; WebSocket remains the primary delivery path
// and the relay is best effort.
//
// Safe for concurrent use.
type Client struct {
	client pahomqtt.Client
	qos    byte

	connected bool
	connMu    sync.RWMutex
}

// Connect establishes the broker connection, registering a Last Will so
// the broker flips the retained status topic to "offline" if the
// process dies uncleanly. On success the client publishes "online".
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)
	opts.SetWill(StatusTopic, "offline", 1, true)

	c := &Client{qos: byte(cfg.QoS)}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.setConnected(true)
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.setConnected(false)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	c.setConnected(true)

	if err := c.publish(StatusTopic, []byte("online"), true); err != nil {
		c.client.Disconnect(disconnectQuiesce)
		return nil, fmt.Errorf("publishing online status: %w", err)
	}

	return c, nil
}

// buildClientOptions maps broker settings onto paho options with
// auto-reconnect enabled.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))
	opts.SetClientID(cfg.Broker.ClientID)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	opts.SetKeepAlive(keepAlive)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(maxReconnectWait)
	opts.SetCleanSession(true)

	return opts
}

// Publish sends an event payload to the given topic at the configured
// QoS. Events are not retained; only the status topic is.
func (c *Client) Publish(topic string, payload []byte) error {
	return c.publish(topic, payload, false)
}

func (c *Client) publish(topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, c.qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// IsConnected reports the current broker connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

func (c *Client) setConnected(state bool) {
	c.connMu.Lock()
	c.connected = state
	c.connMu.Unlock()
}

// Close publishes the offline status and disconnects, allowing pending
// operations to drain.
func (c *Client) Close() {
	if c.IsConnected() {
		// Best effort; the LWT covers the unclean path.
		_ = c.publish(StatusTopic, []byte("offline"), true) //nolint:errcheck
	}
	c.client.Disconnect(disconnectQuiesce)
	c.setConnected(false)
}
