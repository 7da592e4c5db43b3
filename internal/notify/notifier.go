package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Notifier triggers a push notification for a delivered message. The
// call is fire-and-forget: implementations log failures and the relay
// never observes them.
type Notifier interface {
	Send(receiverID, senderID, message, senderName string)
}

// Service calls the external push-dispatcher function over HTTP.
type Service struct {
	BaseURL string
	Client  *http.Client
}

func NewService(baseURL string) *Service {
	return &Service{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the notification payload to the dispatcher. Any failure,
// including a non-2xx response, is logged and discarded.
func (s *Service) Send(receiverID, senderID, message, senderName string) {
	if senderName == "" {
		senderName = senderID
	}

	payload := map[string]string{
		"receiverId": receiverID,
		"senderId":   senderID,
		"message":    message,
		"senderName": senderName,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode notification payload: %v", err)
		return
	}

	resp, err := s.Client.Post(s.BaseURL+"/sendNotificationHTTP", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("WARNING: Push notification failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("WARNING: Push dispatcher returned non-success status: %d", resp.StatusCode)
		return
	}
	log.Printf("Push notification sent to user: %s", receiverID)
}

// HealthCheck probes the dispatcher's health endpoint.
func (s *Service) HealthCheck() bool {
	resp, err := s.Client.Get(s.BaseURL + "/healthCheck")
	if err != nil {
		log.Printf("ERROR: Push dispatcher health check failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode >= 200 && resp.StatusCode < 300
	if healthy {
		log.Println("Push dispatcher health check: HEALTHY")
	} else {
		log.Println("Push dispatcher health check: UNHEALTHY")
	}
	return healthy
}
