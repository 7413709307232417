package notifier

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/knadh/smtppool"
)

type SmtpServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	Connections        int    `yaml:"connections"`
	SendTimeout        int    `yaml:"send_timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

type EmailNotifierConfig struct {
	Server      SmtpServerConfig `yaml:"server"`
	From        string           `yaml:"from"`
	To          []string         `yaml:"to"`
	SubjectTag  string           `yaml:"subject_tag"`
	MinSeverity string           `yaml:"min_severity"`
}

// EmailNotifier relays warning/error notifications to the configured
// operator addresses over a pooled SMTP connection. Delivery failures are
// logged, never returned.
type EmailNotifier struct {
	config EmailNotifierConfig
	pool   *smtppool.Pool
}

func NewEmailNotifier(config EmailNotifierConfig) (*EmailNotifier, error) {
	auth := smtp.PlainAuth("", config.Server.Username, config.Server.Password, config.Server.Host)
	if config.Server.Username == "" && config.Server.Password == "" {
		auth = nil
	}

	pool, err := smtppool.New(smtppool.Opt{
		Host:            config.Server.Host,
		Port:            config.Server.Port,
		MaxConns:        config.Server.Connections,
		IdleTimeout:     time.Duration(config.Server.SendTimeout) * time.Second,
		PoolWaitTimeout: time.Duration(config.Server.SendTimeout) * time.Second,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: config.Server.InsecureSkipVerify,
			ServerName:         config.Server.Host,
		},
		Auth: auth,
	})
	if err != nil {
		return nil, err
	}

	return &EmailNotifier{
		config: config,
		pool:   pool,
	}, nil
}

func (n *EmailNotifier) Notify(severity string, message string) {
	if !n.shouldSend(severity) {
		return
	}

	subject := fmt.Sprintf("[%s] %s notification", n.config.SubjectTag, severity)
	e := smtppool.Email{
		To:      n.config.To,
		From:    n.config.From,
		Subject: subject,
		Text:    []byte(message),
		Headers: textproto.MIMEHeader{},
	}

	if err := n.pool.Send(e); err != nil {
		slog.Error("could not deliver email notification", slog.String("error", err.Error()), slog.String("severity", severity))
	}
}

// shouldSend keeps email for the severities the operators asked for;
// everything lower stays in the logs.
func (n *EmailNotifier) shouldSend(severity string) bool {
	rank := func(s string) int {
		switch s {
		case SEVERITY_ERROR:
			return 2
		case SEVERITY_WARNING:
			return 1
		default:
			return 0
		}
	}
	return rank(severity) >= rank(n.config.MinSeverity)
}
