package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

var ErrBotResponse = errors.New("bot returned an error")

type Client struct {
	// NATS connection
	nc       *nats.Conn
	subject  string
	timeout  time.Duration
	attempts uint
}

func NewClient(nc *nats.Conn, subject string, timeout time.Duration) *Client {
	return &Client{nc: nc, subject: subject, timeout: timeout, attempts: 3}
}

// SetAttempts sets how many times a request is tried before giving up.
func (c *Client) SetAttempts(n uint) {
	c.attempts = n
}

// RequestMove sends a position to the bot and waits for its move. Transport
// failures are retried with exponential backoff; an error reported by the
// bot itself is not.
func (c *Client) RequestMove(ctx context.Context, req *Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp *Response
	err = retry.Do(
		func() error {
			actx, cancel := ctx, context.CancelFunc(func() {})
			if c.timeout > 0 {
				actx, cancel = context.WithTimeout(ctx, c.timeout)
			}
			defer cancel()
			msg, err := c.nc.RequestWithContext(actx, c.subject, data)
			if err != nil {
				if c.nc.LastError() != nil {
					log.Error().Err(c.nc.LastError()).Msg("nats-last-error")
				}
				return err
			}
			log.Debug().Str("res", string(msg.Data)).Msg("bot-response")
			resp, err = decodeResponse(msg.Data)
			if errors.Is(err, ErrBotResponse) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("bot-request-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func decodeResponse(data []byte) (*Response, error) {
	resp := &Response{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.Join(ErrBotResponse, errors.New(resp.Error))
	}
	return resp, nil
}
