package utils

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gctplacement/placetrack-backend/internal/config"
)

// SMSSender delivers OTPs over Africa's Talking as a second channel when the
// account has a phone number on file.
type SMSSender struct {
	username string
	apiKey   string
}

func NewSMSSender(cfg *config.Config) *SMSSender {
	return &SMSSender{
		username: cfg.ATUsername,
		apiKey:   cfg.ATAPIKey,
	}
}

func (s *SMSSender) sendSMS(message string, recipients []string) error {
	if s.username == "" {
		return fmt.Errorf("africa's talking username not set")
	}
	if s.apiKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := "https://api.africastalking.com/version1/messaging"
	log.Printf("Sending SMS to recipients: %v", recipients)

	// Prepare the form data
	data := url.Values{}
	data.Set("username", s.username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	req, err := http.NewRequest("POST", baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", s.apiKey)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	log.Printf("Successfully sent SMS to recipients")
	return nil
}

// SendPasswordResetSMS sends the password reset OTP to a phone number.
func (s *SMSSender) SendPasswordResetSMS(phone, code string) error {
	msg := fmt.Sprintf("Your GCT PlaceTrack password reset OTP is %s. It is valid for 10 minutes.", code)
	return s.sendSMS(msg, []string{phone})
}
