package realtime

import (
	"bytes"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Envelope is the frame written to websocket clients and broker bridges.
type Envelope struct {
	Topic   string    `json:"topic"`
	Payload any       `json:"payload"`
	TS      time.Time `json:"ts"`
}

// EncodeEnvelope renders one frame. The returned slice is owned by the caller.
func EncodeEnvelope(topic string, payload any, ts time.Time) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(Envelope{
		Topic:   topic,
		Payload: payload,
		TS:      ts.UTC(),
	}); err != nil {
		return nil, err
	}
	return append([]byte(nil), bytes.TrimRight(buf.B, "\n")...), nil
}

// clientCommand is what a websocket client may send to narrow its stream.
type clientCommand struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)
