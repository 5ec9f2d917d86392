package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider defines the interface for WhatsApp API providers. The default
// deployment only builds wa.me deep links; a provider is wired in when
// direct sends are configured.
type Provider interface {
	SendMessage(phone, message string) error
	GetName() string
}

// CloudAPIConfig holds configuration for the Meta Cloud API provider
type CloudAPIConfig struct {
	APIKey        string
	PhoneNumberID string
	BaseURL       string
}

// CloudAPIService implements WhatsApp via the Meta Cloud API (works with any BSP)
type CloudAPIService struct {
	config *CloudAPIConfig
	client *http.Client
}

// NewCloudAPIService creates a Meta Cloud API WhatsApp service.
// apiKey: Access Token from Meta Business Suite or BSP
// phoneNumberID: WhatsApp Business Phone Number ID
func NewCloudAPIService(apiKey, phoneNumberID string) *CloudAPIService {
	return &CloudAPIService{
		config: &CloudAPIConfig{
			APIKey:        apiKey,
			PhoneNumberID: phoneNumberID,
			BaseURL:       "https://graph.facebook.com/v18.0",
		},
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL allows overriding the API base URL (for BSP proxies)
func (s *CloudAPIService) SetBaseURL(url string) {
	s.config.BaseURL = url
}

// SendMessage sends a text message via the WhatsApp Cloud API.
// Free-form text only works inside the 24-hour customer service window.
func (s *CloudAPIService) SendMessage(phone, message string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                NormalizePhone(phone),
		"type":              "text",
		"text": map[string]string{
			"preview_url": "false",
			"body":        message,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.config.BaseURL, s.config.PhoneNumberID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp map[string]interface{}
		if json.Unmarshal(body, &errResp) == nil {
			if errObj, ok := errResp["error"].(map[string]interface{}); ok {
				if msg, ok := errObj["message"].(string); ok {
					return fmt.Errorf("WhatsApp API error: %s", msg)
				}
			}
		}
		return fmt.Errorf("WhatsApp API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// GetName returns the provider name
func (s *CloudAPIService) GetName() string {
	return "Meta Cloud API"
}
