package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/Alijeyrad/dentclinic/config"
)

// Client sends template messages via sms.ir.
type Client struct {
	client     *smsir.Client
	templateID string
	enabled    bool
}

// NewFromConfig creates a client. A disabled client no-ops on every send.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	return &Client{
		client:     smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey),
		templateID: cfg.SMSIR.TemplateID,
		enabled:    true,
	}, nil
}

// AppointmentReminder is the data of the appointment confirmation template.
// The template must declare the parameters "name", "date", "time" and "professional".
type AppointmentReminder struct {
	PatientName      string
	Date             string
	Time             string
	ProfessionalName string
}

// SendAppointmentReminder sends the configured appointment template to mobile.
func (c *Client) SendAppointmentReminder(ctx context.Context, mobile string, r AppointmentReminder) error {
	return c.SendTemplate(ctx, mobile, c.templateID, map[string]string{
		"name":         r.PatientName,
		"date":         r.Date,
		"time":         r.Time,
		"professional": r.ProfessionalName,
	})
}

// SendTemplate sends an ultra-fast template message.
func (c *Client) SendTemplate(ctx context.Context, mobile, templateID string, params map[string]string) error {
	if !c.enabled {
		return nil
	}
	if mobile == "" {
		return errors.New("phone number is required")
	}
	if templateID == "" {
		return errors.New("template ID is required")
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     mobile,
		TemplateID: templateID,
		Parameters: make([]smsir.UltraFastParameter, 0, len(params)),
	}
	for k, v := range params {
		req.Parameters = append(req.Parameters, smsir.UltraFastParameter{Key: k, Value: v})
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}
	return nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
