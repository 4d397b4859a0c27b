package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultFCMEndpoint = "https://fcm.googleapis.com/fcm/send"

// FCMSender talks to the FCM HTTP API directly.
type FCMSender struct {
	serverKey string
	endpoint  string
	client    *http.Client
}

func NewFCMSender(serverKey string) *FCMSender {
	return &FCMSender{
		serverKey: serverKey,
		endpoint:  defaultFCMEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

func (s *FCMSender) Send(token string, p Payload) error {
	if s.serverKey == "" {
		return fmt.Errorf("fcm server key not configured")
	}

	body, err := json.Marshal(fcmRequest{
		To:           token,
		Notification: fcmNotification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fcm returned status %d", resp.StatusCode)
	}
	return nil
}
