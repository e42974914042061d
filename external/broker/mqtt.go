package broker

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

const (
	defaultTopicPrefix = "football"
	publishTimeout     = 5 * time.Second
)

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
	Logger      *logging.Logger
}

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher forwards realtime frames to "{prefix}/{topic}".
type MQTTPublisher struct {
	client mqttClient
	prefix string
	qos    byte
	logger *logging.Logger
}

func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("component", "mqtt-bridge")

	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		clientID = fmt.Sprintf("football-live-api-%d", time.Now().Unix())
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("mqtt bridge connected", "broker", cfg.Broker)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, crerr.Wrap(token.Error(), "connect mqtt")
	}

	return newMQTTPublisher(client, cfg.TopicPrefix, cfg.QoS, logger), nil
}

func newMQTTPublisher(client mqttClient, prefix string, qos byte, logger *logging.Logger) *MQTTPublisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	if qos > 2 {
		qos = 0
	}
	return &MQTTPublisher{client: client, prefix: prefix, qos: qos, logger: logger}
}

func (p *MQTTPublisher) Deliver(_ context.Context, topic string, frame []byte) error {
	full := p.prefix + "/" + topic
	token := p.client.Publish(full, p.qos, false, frame)
	if !token.WaitTimeout(publishTimeout) {
		return crerr.Newf("publish %s to mqtt: timed out", full)
	}
	if err := token.Error(); err != nil {
		return crerr.Wrapf(err, "publish %s to mqtt", full)
	}
	return nil
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
