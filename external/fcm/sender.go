package fcm

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"google.golang.org/api/option"
)

// ServiceAccount mirrors the fields of a Google service-account key file.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// Credentials selects the first configured source: a key file, inline key
// JSON, or the individual service-account fields.
type Credentials struct {
	File           string
	JSON           string
	ServiceAccount ServiceAccount
}

func (c Credentials) clientOption() (option.ClientOption, error) {
	switch {
	case strings.TrimSpace(c.File) != "":
		return option.WithCredentialsFile(strings.TrimSpace(c.File)), nil
	case strings.TrimSpace(c.JSON) != "":
		return option.WithCredentialsJSON([]byte(c.JSON)), nil
	case strings.TrimSpace(c.ServiceAccount.ClientEmail) != "":
		account := c.ServiceAccount
		if account.Type == "" {
			account.Type = "service_account"
		}
		account.PrivateKey = strings.ReplaceAll(account.PrivateKey, `\n`, "\n")
		raw, err := sonic.Marshal(account)
		if err != nil {
			return nil, crerr.Wrap(err, "encode firebase service account")
		}
		return option.WithCredentialsJSON(raw), nil
	default:
		return nil, crerr.New("firebase credentials are not configured")
	}
}

type messageClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Sender delivers notifications through Firebase Cloud Messaging.
type Sender struct {
	client messageClient
	logger *logging.Logger
}

func NewSender(ctx context.Context, creds Credentials, logger *logging.Logger) (*Sender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	opt, err := creds.clientOption()
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, crerr.Wrap(err, "init firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, crerr.Wrap(err, "init firebase messaging")
	}
	return &Sender{client: client, logger: logger.With("component", "fcm")}, nil
}

func (s *Sender) Send(ctx context.Context, token, title, body string) error {
	if strings.TrimSpace(token) == "" {
		return crerr.New("empty fcm token")
	}
	id, err := s.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		return crerr.Wrapf(err, "send fcm message %q", title)
	}
	s.logger.DebugContext(ctx, "fcm message sent", "message_id", id, "title", title)
	return nil
}

// LogSender only logs notifications. It is used when push delivery is disabled.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger.With("component", "fcm")}
}

func (s *LogSender) Send(ctx context.Context, token, title, body string) error {
	s.logger.InfoContext(ctx, "push notification", "token_suffix", tokenSuffix(token), "title", title, "body", body)
	return nil
}

func tokenSuffix(token string) string {
	if len(token) <= 6 {
		return token
	}
	return token[len(token)-6:]
}
