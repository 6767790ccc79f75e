package sendgrid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
)

const (
	defaultHost        = "https://api.sendgrid.com"
	mailSendEndpoint   = "/v3/mail/send"
	errorBodyLimit     = 1024
	defaultSendTimeout = 10 * time.Second
)

var (
	errAPIKeyRequired = errors.New("sendgrid api key is required")
	errFromRequired   = errors.New("sendgrid from address is required")
)

// Client sends transactional email through the v3 mail/send API.
type Client struct {
	rest   *rest.Client
	host   string
	apiKey string
	from   Address
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.rest = &rest.Client{HTTPClient: client}
		}
	}
}

// WithHost overrides the API host, e.g. the EU region.
func WithHost(host string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(host), "/"); trimmed != "" {
			c.host = trimmed
		}
	}
}

// NewClient builds a client that sends as fromEmail/fromName.
func NewClient(apiKey, fromEmail, fromName string, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errAPIKeyRequired
	}
	from := strings.TrimSpace(fromEmail)
	if from == "" {
		return nil, errFromRequired
	}
	client := &Client{
		apiKey: key,
		host:   defaultHost,
		from:   Address{Email: from, Name: strings.TrimSpace(fromName)},
		rest:   &rest.Client{HTTPClient: &http.Client{Timeout: defaultSendTimeout}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

type Address struct {
	Email string
	Name  string
}

// Message is a single plain-text email.
type Message struct {
	To      Address
	Subject string
	Text    string
}

// Send posts msg to mail/send. SendGrid answers 202 on acceptance.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.rest == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "sendgrid client not configured")
	}
	if strings.TrimSpace(msg.To.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	email := mail.NewSingleEmailPlainText(
		mail.NewEmail(c.from.Name, c.from.Email),
		msg.Subject,
		mail.NewEmail(msg.To.Name, msg.To.Email),
		msg.Text,
	)
	request := sg.GetRequest(c.apiKey, mailSendEndpoint, c.host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(email)

	resp, err := c.rest.SendWithContext(ctx, request)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute mail send request")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(resp.Body)
		if len(body) > errorBodyLimit {
			body = body[:errorBodyLimit]
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, body), "mail send request failed")
	}
	return nil
}
