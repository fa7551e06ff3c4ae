package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Telegram sends messages through the bot sendMessage endpoint.
type Telegram struct {
	apiURL string
	chatID string
	client *http.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		apiURL: fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token),
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// newTelegramWithURL is used by tests to point at a fake bot API.
func newTelegramWithURL(apiURL, chatID string) *Telegram {
	return &Telegram{apiURL: apiURL, chatID: chatID, client: &http.Client{Timeout: 10 * time.Second}}
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	params := url.Values{}
	params.Set("chat_id", t.chatID)
	params.Set("text", text)
	params.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned %d", resp.StatusCode)
	}
	return nil
}
