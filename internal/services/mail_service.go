package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sirupsen/logrus"

	"swasthsetu/pkg/utils"
)

type MailService interface {
	SendVerificationCode(to, code string) error
	SendPasswordReset(to, token string) error
}

type SMTPConfig struct {
	Host       string
	Port       int // 587 for STARTTLS, 465 with UseSSL
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool

	AppName    string
	AppBaseURL string
}

type EmailData struct {
	Title     string
	Intro     string
	Code      string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	dial    func(network, addr string) (net.Conn, error)
	timeout time.Duration
}

func NewSMTPMailService(cfg SMTPConfig) MailService {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
		dial:    dialer.Dial,
		timeout: 30 * time.Second,
	}
}

func (s *smtpMailService) SendVerificationCode(to, code string) error {
	subject := "Verify your SwasthSetu account"
	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   fmt.Sprintf("Use the code below to verify your email address. The code expires at %s.", utils.FormatDisplayIST(time.Now().Add(verificationTTL))),
		Code:    code,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(to), url.QueryEscape(token))
	subject := "Reset your password"

	html, text, err := s.renderEmail(EmailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. If you did not request this, you can ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f9; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 560px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; background: #0f766e; color: #ffffff; font-weight: 700; font-size: 20px; }
    .body { padding: 32px; line-height: 1.6; }
    .code { font-size: 32px; letter-spacing: 8px; font-weight: 700; color: #0f766e; }
    .btn { display: inline-block; padding: 14px 28px; background: #0f766e; color: #ffffff !important; border-radius: 8px; text-decoration: none; }
    .footer { padding: 16px 32px; font-size: 12px; color: #64748b; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="body">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Code}}<p class="code">{{.Code}}</p>{{end}}
      {{if .ButtonURL}}
        <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
        <p>If the button doesn't work, open this link: {{.ButtonURL}}</p>
      {{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
Code: {{.Code}}
{{end}}{{if .ButtonURL}}
Open this link:
{{.ButtonURL}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string, now time.Time) []byte {
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody, time.Now())

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	conn, err := s.dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	// bounds the whole SMTP conversation
	if err = conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return err
	}
	if s.cfg.UseSSL {
		conn = tls.Client(conn, tlsCfg)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// logMailService records outgoing mail instead of sending it; used when SMTP
// is not configured.
type logMailService struct {
	log logrus.FieldLogger
}

func NewLogMailService(log logrus.FieldLogger) MailService {
	return &logMailService{log: log}
}

func (m *logMailService) SendVerificationCode(to, code string) error {
	m.log.WithFields(logrus.Fields{"to": to, "code": code}).Info("verification code (mail not configured)")
	return nil
}

func (m *logMailService) SendPasswordReset(to, token string) error {
	m.log.WithFields(logrus.Fields{"to": to, "token": token}).Info("password reset token (mail not configured)")
	return nil
}
