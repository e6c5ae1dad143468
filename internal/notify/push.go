// Package notify holds the outbound notification clients. Both are
// best-effort: callers dispatch them in the background and only log
// failures, so a notification error never touches pipeline state.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"vct-tracker/internal/config"
	"vct-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type PushClient struct {
	url    string
	token  string
	client *fasthttp.Client
	logger zerolog.Logger
}

func NewPushClient(cfg *config.Config, logger zerolog.Logger) *PushClient {
	if cfg.PushToken == "" {
		logger.Warn().Msg("PUSH_TOKEN not set, push notifications disabled")
	}
	return &PushClient{
		url:   cfg.PushURL,
		token: cfg.PushToken,
		client: &fasthttp.Client{
			ReadTimeout:  constants.NotifyTimeout,
			WriteTimeout: constants.NotifyTimeout,
		},
		logger: logger,
	}
}

// Notify sends one push notification. A missing token makes this a no-op
// rather than an error so the pipeline runs unchanged without credentials.
func (c *PushClient) Notify(ctx context.Context, message, title string) error {
	if c.token == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"to":    c.token,
		"title": title,
		"body":  message,
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.client.Do(req, resp); err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("push request: HTTP %d", resp.StatusCode())
	}

	c.logger.Debug().Str("title", title).Msg("push notification sent")
	return nil
}
