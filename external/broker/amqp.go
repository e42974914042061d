package broker

import (
	"context"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/streadway/amqp"
)

const defaultExchange = "football.realtime"

type AMQPConfig struct {
	URL      string
	Exchange string
	Logger   *logging.Logger
}

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a connection and returns a channel with the exchange declared.
type dialFunc func(url, exchange string) (amqpChannel, func() error, error)

// AMQPPublisher forwards realtime frames to a topic exchange, using the
// realtime topic as routing key. A broken channel is reopened on the next frame.
type AMQPPublisher struct {
	url      string
	exchange string
	dial     dialFunc
	logger   *logging.Logger

	mu        sync.Mutex
	channel   amqpChannel
	closeConn func() error
}

func NewAMQPPublisher(cfg AMQPConfig) (*AMQPPublisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	exchange := strings.TrimSpace(cfg.Exchange)
	if exchange == "" {
		exchange = defaultExchange
	}

	p := &AMQPPublisher{
		url:      strings.TrimSpace(cfg.URL),
		exchange: exchange,
		dial:     dialAMQP,
		logger:   logger.With("component", "amqp-bridge", "exchange", exchange),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialAMQP(url, exchange string) (amqpChannel, func() error, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 30 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, nil, crerr.Wrap(err, "dial amqp")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, crerr.Wrap(err, "open amqp channel")
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, crerr.Wrapf(err, "declare exchange %s", exchange)
	}
	return ch, conn.Close, nil
}

func (p *AMQPPublisher) connectLocked() error {
	ch, closeConn, err := p.dial(p.url, p.exchange)
	if err != nil {
		return err
	}
	p.channel = ch
	p.closeConn = closeConn
	p.logger.Info("amqp bridge connected")
	return nil
}

func (p *AMQPPublisher) Deliver(_ context.Context, topic string, frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		if err := p.connectLocked(); err != nil {
			return crerr.Wrap(err, "reconnect amqp")
		}
	}

	err := p.channel.Publish(p.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now().UTC(),
		Body:         frame,
	})
	if err != nil {
		p.resetLocked()
		return crerr.Wrapf(err, "publish %s to amqp", topic)
	}
	return nil
}

func (p *AMQPPublisher) resetLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.closeConn != nil {
		_ = p.closeConn()
	}
	p.channel = nil
	p.closeConn = nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}
