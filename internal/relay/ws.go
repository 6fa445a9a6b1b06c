package relay

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"confide/internal/domain"
)

// WS subscribes to live envelope delivery over WebSocket. It is transport
// only: envelopes arrive in relay order and the caller decrypts them exactly
// as it would after an HTTP fetch.
type WS struct {
	Base   string // relay base URL, http(s) scheme
	Dialer *websocket.Dialer
	Log    *logrus.Logger
}

// NewWS returns a stream client for the given relay base URL.
func NewWS(base string, log *logrus.Logger) *WS {
	if log == nil {
		log = logrus.New()
	}
	return &WS{Base: base, Dialer: websocket.DefaultDialer, Log: log}
}

// Subscribe opens the WebSocket and returns a channel of incoming envelopes.
// The channel closes when the connection drops or ctx is cancelled; callers
// decide whether to redial.
func (w *WS) Subscribe(
	ctx context.Context,
	user domain.UserID,
) (<-chan domain.Envelope, error) {
	wsURL := strings.Replace(w.Base, "http", "ws", 1) +
		"/ws?user=" + url.QueryEscape(user.String())

	conn, _, err := w.Dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Envelope)
	go func() {
		defer close(out)
		defer conn.Close()
		go func() {
			<-ctx.Done()
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					w.Log.WithError(err).Warn("relay stream closed")
				}
				return
			}
			var env domain.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				w.Log.WithError(err).Warn("dropping malformed envelope from stream")
				continue
			}
			select {
			case out <- env:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var _ domain.RelayStream = (*WS)(nil)
