package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSClient talks to an HTTP SMS gateway of the bulk-sender variety:
// form-encoded POST, api key, sender id, recipient number, message text.
type SMSClient struct {
	baseURL    string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

func NewSMSClient(baseURL, apiKey, senderID string, timeout time.Duration) *SMSClient {
	return &SMSClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		senderID: senderID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *SMSClient) Send(ctx context.Context, phone, message string) error {
	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("senderid", c.senderID)
	form.Set("number", phone)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smsapi", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("SMS gateway returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
