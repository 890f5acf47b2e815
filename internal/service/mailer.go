package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

type EmailKind string

const (
	EmailInvitation    EmailKind = "invitation"
	EmailPasswordReset EmailKind = "password_reset"
)

// EmailSender delivers credential links. Send reports delivery success and
// never returns an error: callers surface the outcome as emailSent.
type EmailSender interface {
	Send(ctx context.Context, kind EmailKind, to, name, token string) bool
}

// SetupLink builds the page a recipient opens to choose a password.
func SetupLink(appURL string, kind EmailKind, token string) string {
	q := url.Values{}
	q.Set("token", token)
	if kind == EmailPasswordReset {
		q.Set("reset", "true")
	}
	return appURL + "/admin/setup-password?" + q.Encode()
}

type emailContent struct {
	Name     string
	Link     string
	Validity string
}

var (
	invitationHTML = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Bienvenue sur LFP</title></head>
<body style="background-color:#000000;font-family:sans-serif;color:#888888">
<h1 style="color:#ffffff">Bienvenue {{.Name}} !</h1>
<p>Un compte administrateur a été créé pour vous sur le panel de gestion de <strong>La Forêt Performance</strong>.</p>
<p><a href="{{.Link}}" style="background:#ffffff;color:#000000;padding:18px 48px;border-radius:12px;text-decoration:none">Activer mon compte</a></p>
<p>Ce lien expire dans <strong>{{.Validity}}</strong>. Si vous n'avez pas demandé ce compte, ignorez cet email.</p>
</body></html>`))

	resetHTML = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Réinitialisation mot de passe</title></head>
<body style="background-color:#000000;font-family:sans-serif;color:#888888">
<h1 style="color:#ffffff">Réinitialisation du mot de passe</h1>
<p>Bonjour <strong>{{.Name}}</strong>, vous avez demandé à réinitialiser votre mot de passe pour accéder au panel d'administration.</p>
<p><a href="{{.Link}}" style="background:#ffffff;color:#000000;padding:18px 48px;border-radius:12px;text-decoration:none">Nouveau mot de passe</a></p>
<p>Ce lien expire dans <strong>{{.Validity}}</strong>. Si vous n'avez pas fait cette demande, ignorez cet email.</p>
</body></html>`))
)

func renderEmail(kind EmailKind, c emailContent) (subject, text, html string, err error) {
	var buf bytes.Buffer
	switch kind {
	case EmailInvitation:
		subject = "Bienvenue sur LFP Admin - Definissez votre mot de passe"
		c.Validity = "24 heures"
		err = invitationHTML.Execute(&buf, c)
		text = fmt.Sprintf("Bienvenue %s !\n\nDéfinissez votre mot de passe : %s\n\nCe lien expire dans %s.\n", c.Name, c.Link, c.Validity)
	case EmailPasswordReset:
		subject = "LFP Admin - Reinitialisation de mot de passe"
		c.Validity = "1 heure"
		err = resetHTML.Execute(&buf, c)
		text = fmt.Sprintf("Bonjour %s,\n\nNouveau mot de passe : %s\n\nCe lien expire dans %s.\n", c.Name, c.Link, c.Validity)
	default:
		return "", "", "", fmt.Errorf("unknown email kind %q", kind)
	}
	return subject, text, buf.String(), err
}

// LogEmailSender stands in for SMTP in development. It logs the link and
// reports success.
type LogEmailSender struct {
	logger *slog.Logger
	appURL string
}

func NewLogEmailSender(logger *slog.Logger, appURL string) *LogEmailSender {
	return &LogEmailSender{logger: logger, appURL: appURL}
}

func (s *LogEmailSender) Send(ctx context.Context, kind EmailKind, to, name, token string) bool {
	s.logger.InfoContext(ctx, "credential email not sent, smtp disabled",
		"kind", kind,
		"email", to,
		"name", name,
		"link", SetupLink(s.appURL, kind, token),
	)
	observability.RecordEmailDispatch(ctx, string(kind), "log", "success")
	return true
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ImplicitTLS selects SMTPS (port 465 style) instead of STARTTLS.
	ImplicitTLS bool
	Timeout     time.Duration
}

type SMTPEmailSender struct {
	settings SMTPSettings
	appURL   string
	logger   *slog.Logger
	dial     func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPEmailSender(settings SMTPSettings, appURL string, logger *slog.Logger) (*SMTPEmailSender, error) {
	opts := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithTimeout(max(settings.Timeout, 10*time.Second)),
	}
	if settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.Username),
			mail.WithPassword(settings.Password),
		)
	}
	if settings.ImplicitTLS {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	client, err := mail.NewClient(settings.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPEmailSender{
		settings: settings,
		appURL:   appURL,
		logger:   logger,
		dial: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

func (s *SMTPEmailSender) Send(ctx context.Context, kind EmailKind, to, name, token string) bool {
	msg, err := s.buildMessage(kind, to, name, token)
	if err == nil {
		err = s.dial(ctx, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "credential email failed", "kind", kind, "email", to, "error", err)
		observability.RecordEmailDispatch(ctx, string(kind), "smtp", "error")
		return false
	}
	observability.RecordEmailDispatch(ctx, string(kind), "smtp", "success")
	return true
}

func (s *SMTPEmailSender) buildMessage(kind EmailKind, to, name, token string) (*mail.Msg, error) {
	subject, text, html, err := renderEmail(kind, emailContent{Name: name, Link: SetupLink(s.appURL, kind, token)})
	if err != nil {
		return nil, err
	}
	msg := mail.NewMsg()
	if err := msg.From(s.settings.From); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)
	return msg, nil
}
