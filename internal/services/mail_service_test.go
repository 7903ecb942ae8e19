package services

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/testutils"
)

func TestRenderEmail(t *testing.T) {
	svc := NewSMTPMailService(SMTPConfig{AppName: "SwasthSetu"}).(*smtpMailService)

	html, text, err := svc.renderEmail(EmailData{
		Title:   "Verify",
		Intro:   "Use the code",
		Code:    "123456",
		AppName: "SwasthSetu",
		Year:    2026,
	})
	require.NoError(t, err)
	assert.Contains(t, html, `<p class="code">123456</p>`)
	assert.NotContains(t, html, `class="btn"`)
	assert.Contains(t, text, "Code: 123456")
	assert.Contains(t, text, "(c) 2026")
}

func TestBuildMessage(t *testing.T) {
	svc := NewSMTPMailService(SMTPConfig{From: "noreply@swasthsetu.in", FromName: "SwasthSetu"}).(*smtpMailService)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	msg := string(svc.buildMessage("ravi@example.com", "Hello", "<p>hi</p>", "hi", now))

	assert.True(t, strings.HasPrefix(msg, "From: SwasthSetu <noreply@swasthsetu.in>\r\n"))
	assert.Contains(t, msg, "To: ravi@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "<p>hi</p>")
	assert.True(t, strings.HasSuffix(msg, "--\r\n"))
}

func TestLogMailService(t *testing.T) {
	log, hook := testutils.Logger()
	mail := NewLogMailService(log)

	require.NoError(t, mail.SendVerificationCode("ravi@example.com", "654321"))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "654321", hook.LastEntry().Data["code"])
}

func TestSendGivesUpOnStalledServer(t *testing.T) {
	svc := NewSMTPMailService(SMTPConfig{Host: "smtp.stalled.test", Port: 587, From: "noreply@swasthsetu.in"}).(*smtpMailService)
	svc.timeout = 100 * time.Millisecond

	client, server := net.Pipe()
	defer server.Close()
	svc.dial = func(string, string) (net.Conn, error) { return client, nil }

	start := time.Now()
	err := svc.SendVerificationCode("ravi@example.com", "123456")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}
