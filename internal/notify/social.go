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

const postTemplate = "🚨 VCT DATABASE UPDATE 🚨\n\n%s\n\n#VCT #VALORANTChampionsTour #VALORANT"

type SocialClient struct {
	url    string
	token  string
	client *fasthttp.Client
	logger zerolog.Logger
}

func NewSocialClient(cfg *config.Config, logger zerolog.Logger) *SocialClient {
	if cfg.SocialToken == "" {
		logger.Warn().Msg("SOCIAL_TOKEN not set, social posts disabled")
	}
	return &SocialClient{
		url:   cfg.SocialAPIURL,
		token: cfg.SocialToken,
		client: &fasthttp.Client{
			ReadTimeout:  constants.NotifyTimeout,
			WriteTimeout: constants.NotifyTimeout,
		},
		logger: logger,
	}
}

// Post wraps the message in the fixed banner/hashtag template and publishes
// it. Like push, a missing token disables the client silently.
func (c *SocialClient) Post(ctx context.Context, message string) error {
	if c.token == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf(postTemplate, message),
	})
	if err != nil {
		return fmt.Errorf("marshal post payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.SetBody(body)

	if err := c.client.Do(req, resp); err != nil {
		return fmt.Errorf("social post: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("social post: HTTP %d", resp.StatusCode())
	}

	c.logger.Debug().Msg("social post published")
	return nil
}
