package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// MailClient talks to a transactional mail HTTP API.
type MailClient struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewMailClient(baseURL, apiKey, from string, timeout time.Duration) *MailClient {
	return &MailClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *MailClient) Send(ctx context.Context, msg MailMessage) error {
	payload := struct {
		From string `json:"from"`
		MailMessage
	}{From: c.from, MailMessage: msg}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
