package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

// tokenRefreshWindow renews the bearer token this long before it expires.
const tokenRefreshWindow = 5 * time.Minute

// PesapalClient talks to the PesaPal v3 API. The bearer token is cached on
// the client behind a mutex and refreshed lazily when missing or close to
// expiry; it is never shared through package state.
type PesapalClient struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	NotificationID string
	HTTPClient     *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewPesapalClient builds a client from the PESAPAL_* environment variables
func NewPesapalClient() *PesapalClient {
	return &PesapalClient{
		BaseURL:        os.Getenv("PESAPAL_API_BASE_URL"),
		ConsumerKey:    os.Getenv("PESAPAL_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("PESAPAL_CONSUMER_SECRET"),
		CallbackURL:    os.Getenv("PESAPAL_CALLBACK_URL"),
		NotificationID: os.Getenv("PESAPAL_NOTIFICATION_ID"),
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// PesapalBillingAddress identifies the paying member to PesaPal.
type PesapalBillingAddress struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// PesapalOrder is the SubmitOrder request body.
type PesapalOrder struct {
	ID             string                `json:"id"`
	Currency       string                `json:"currency"`
	Amount         string                `json:"amount"`
	Description    string                `json:"description"`
	CallbackURL    string                `json:"callback_url"`
	NotificationID string                `json:"notification_id"`
	Branch         string                `json:"branch"`
	BillingAddress PesapalBillingAddress `json:"billing_address"`
}

// PesapalOrderResponse carries the redirect URL the payer is sent to and
// PesaPal's tracking id for later status checks.
type PesapalOrderResponse struct {
	RedirectURL     string `json:"redirect_url"`
	OrderTrackingID string `json:"order_tracking_id"`
}

type pesapalTokenResponse struct {
	Token string `json:"token"`
	// PesaPal returns the token lifetime in seconds.
	ExpiresIn int64  `json:"expiryDate"`
	Error     string `json:"error,omitempty"`
}

// accessToken returns a valid bearer token, refreshing when the cached one
// is absent or within the refresh window of expiry.
func (p *PesapalClient) accessToken() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry.Add(-tokenRefreshWindow)) {
		return p.token, nil
	}
	if err := p.refreshToken(); err != nil {
		return "", err
	}
	return p.token, nil
}

// refreshToken must be called with the mutex held.
func (p *PesapalClient) refreshToken() error {
	body, err := json.Marshal(map[string]string{
		"consumer_key":    p.ConsumerKey,
		"consumer_secret": p.ConsumerSecret,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.BaseURL+"/api/Auth/RequestToken", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error refreshing PesaPal token: %w", err)
	}
	defer resp.Body.Close()

	var tokenResp pesapalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("error decoding PesaPal token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || tokenResp.Token == "" {
		return fmt.Errorf("failed to refresh PesaPal token: status %d %s", resp.StatusCode, tokenResp.Error)
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	p.token = tokenResp.Token
	p.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	log.Printf("PesaPal token refreshed, expires %s", p.tokenExpiry.Format(time.RFC3339))
	return nil
}

// SubmitOrder initiates a payment and returns the redirect URL and order
// tracking id.
func (p *PesapalClient) SubmitOrder(order PesapalOrder) (*PesapalOrderResponse, error) {
	token, err := p.accessToken()
	if err != nil {
		return nil, err
	}

	if order.CallbackURL == "" {
		order.CallbackURL = p.CallbackURL
	}
	if order.NotificationID == "" {
		order.NotificationID = p.NotificationID
	}
	if order.Branch == "" {
		order.Branch = "DEFAULT"
	}
	if order.Currency == "" {
		order.Currency = "KES"
	}

	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.BaseURL+"/api/Transactions/SubmitOrder", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error initiating PesaPal payment: %w", err)
	}
	defer resp.Body.Close()

	var orderResp PesapalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("error decoding PesaPal order response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to initiate PesaPal payment: status %d", resp.StatusCode)
	}
	if orderResp.RedirectURL == "" || orderResp.OrderTrackingID == "" {
		return nil, fmt.Errorf("PesaPal response missing redirect_url or order_tracking_id")
	}

	return &orderResp, nil
}

// TransactionStatus checks the status of a payment by order tracking id.
// Returns UNKNOWN when PesaPal cannot be reached or answers abnormally.
func (p *PesapalClient) TransactionStatus(orderTrackingID string) string {
	token, err := p.accessToken()
	if err != nil {
		log.Printf("Error checking PesaPal payment status: %v", err)
		return "UNKNOWN"
	}

	req, err := http.NewRequest(http.MethodGet,
		p.BaseURL+"/api/Transactions/GetTransactionStatus?orderTrackingId="+orderTrackingID, nil)
	if err != nil {
		log.Printf("Error checking PesaPal payment status: %v", err)
		return "UNKNOWN"
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Error checking PesaPal payment status: %v", err)
		return "UNKNOWN"
	}
	defer resp.Body.Close()

	var statusResp struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil || resp.StatusCode != http.StatusOK {
		log.Printf("Failed to check PesaPal payment status: status %d, err %v", resp.StatusCode, err)
		return "UNKNOWN"
	}

	return statusResp.Status
}
