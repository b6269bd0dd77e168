package carrier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

// Client sends SMS through a Twilio-compatible Messages API.
type Client struct {
	httpClient *resty.Client
	accountSID string
	fromNumber string
}

type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// NewClient builds the carrier client. Retries default to zero: a retried
// POST after a timeout can deliver the same SMS twice.
func NewClient(cfg environments.CarrierConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		accountSID: cfg.AccountSID,
		fromNumber: cfg.FromNumber,
	}
}

// Send transmits body to phone and returns the carrier's message resource.
// Any transport error or non-201 answer is a delivery failure.
func (c *Client) Send(ctx context.Context, phone, body string) (*domain.CarrierResponse, error) {
	payload := domain.CarrierRequest{
		To:   phone,
		From: c.fromNumber,
		Body: body,
	}

	var result domain.CarrierResponse
	var failure apiError

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("accountSid", c.accountSID).
		SetFormData(map[string]string{
			"To":   payload.To,
			"From": payload.From,
			"Body": payload.Body,
		}).
		SetResult(&result).
		SetError(&failure).
		Post("/2010-04-01/Accounts/{accountSid}/Messages.json")

	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", domain.ErrDelivery, err)
	}

	logger.Infof("Carrier send to %s completed in %v (status: %d)", maskPhone(phone), duration, resp.StatusCode())

	if resp.StatusCode() != http.StatusCreated {
		if failure.Message != "" {
			return nil, fmt.Errorf("%w: carrier error %d: %s", domain.ErrDelivery, failure.Code, failure.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code: %d (expected 201)", domain.ErrDelivery, resp.StatusCode())
	}

	return &result, nil
}

func (c *Client) GetBaseURL() string {
	return c.httpClient.BaseURL
}

// maskPhone keeps the last four digits for logs.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "***" + phone[len(phone)-4:]
}
