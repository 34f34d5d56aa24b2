// file: internals/features/notifications/service/push_client.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nitihub_backend/internals/configs"
)

// PushMessage is one delivery to the external push backend.
type PushMessage struct {
	Receiver string `json:"receiver"`
	Topic    string `json:"topic,omitempty"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Type     string `json:"type"`
}

// Pusher delivers a batch; implementations must be safe for concurrent use.
type Pusher interface {
	Send(ctx context.Context, batch []PushMessage) error
}

type httpPushClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewPushClient() Pusher {
	return &httpPushClient{
		endpoint: configs.PushEndpoint,
		apiKey:   configs.PushAPIKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *httpPushClient) Send(ctx context.Context, batch []PushMessage) error {
	if p.endpoint == "" {
		return errors.New("push endpoint not configured")
	}
	body, err := json.Marshal(map[string]interface{}{"messages": batch})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "key="+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push backend status %d", resp.StatusCode)
	}
	return nil
}
