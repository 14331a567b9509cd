package bot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

var errNoExternalURL = errors.New("RENDER_EXTERNAL_URL is not set")

// WebhookRegistrar performs the one-shot webhook registration call against
// the Telegram Bot API. The URL template is fixed:
// POST <base>/bot<token>/setWebhook with body {"url": "<external>/<token>"}.
type WebhookRegistrar struct {
	apiBase    string
	httpClient *http.Client
}

func NewWebhookRegistrar() *WebhookRegistrar {
	return &WebhookRegistrar{
		apiBase:    telegramAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Register points the bot's webhook at externalURL/<token>.
func (r *WebhookRegistrar) Register(token, externalURL string) error {
	if externalURL == "" {
		return errNoExternalURL
	}
	body := map[string]string{"url": externalURL + "/" + token}
	return r.call(token, "setWebhook", body)
}

// Delete removes any registered webhook so getUpdates polling works.
func (r *WebhookRegistrar) Delete(token string) error {
	return r.call(token, "deleteWebhook", map[string]string{})
}

func (r *WebhookRegistrar) call(token, method string, body map[string]string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Post(
		fmt.Sprintf("%s/bot%s/%s", r.apiBase, token, method),
		"application/json",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK || !apiResp.OK {
		return fmt.Errorf("%s failed: status %d: %s", method, resp.StatusCode, apiResp.Description)
	}
	return nil
}

// RegisterWebhook is the launcher entry point: one synchronous
// registration call built from config.
func RegisterWebhook(cfg *Config) error {
	return NewWebhookRegistrar().Register(cfg.TelegramToken, cfg.ExternalURL)
}

// DeleteWebhook removes a stale webhook before polling starts.
func DeleteWebhook(cfg *Config) error {
	return NewWebhookRegistrar().Delete(cfg.TelegramToken)
}
