package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Mailer delivers account verification links.
type Mailer interface {
	SendVerification(ctx context.Context, toEmail, name, token string) error
}

// LogMailer writes the verification link to the log instead of sending mail.
type LogMailer struct {
	BaseURL string
	Log     *zap.Logger
}

func NewLogMailer(baseURL string, log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{BaseURL: strings.TrimRight(baseURL, "/"), Log: log}
}

func (m *LogMailer) Link(token string) string {
	return m.BaseURL + "?token=" + url.QueryEscape(token)
}

func (m *LogMailer) SendVerification(_ context.Context, toEmail, name, token string) error {
	m.Log.Info("📧 verification link",
		zap.String("to", toEmail),
		zap.String("name", name),
		zap.String("link", m.Link(token)),
	)
	return nil
}

// WebhookMailer hands the verification mail to an HTTP relay, which owns
// templating and delivery. The relay gets one JSON POST per message.
type WebhookMailer struct {
	endpoint string
	links    *LogMailer
	client   *resty.Client
	log      *zap.Logger
}

type webhookMessage struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Link    string `json:"link"`
}

type webhookReply struct {
	ID string `json:"id"`
}

const verificationSubject = "Verify your HostelHub account"

// NewWebhookMailer posts to webhookURL; a non-empty token is sent as a
// bearer credential.
func NewWebhookMailer(webhookURL, token, verifyBaseURL string, log *zap.Logger) *WebhookMailer {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &WebhookMailer{
		endpoint: webhookURL,
		links:    NewLogMailer(verifyBaseURL, log),
		client:   client,
		log:      log,
	}
}

func (m *WebhookMailer) SendVerification(ctx context.Context, toEmail, name, token string) error {
	var reply webhookReply
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(webhookMessage{
			To:      toEmail,
			Name:    name,
			Subject: verificationSubject,
			Link:    m.links.Link(token),
		}).
		SetResult(&reply).
		Post(m.endpoint)
	if err != nil {
		return fmt.Errorf("mail webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail webhook: status %d", resp.StatusCode())
	}
	m.log.Info("📧 verification mail queued", zap.String("to", toEmail), zap.String("id", reply.ID))
	return nil
}
