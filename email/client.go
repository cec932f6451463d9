// Package email sends outbound notifications through Resend.
package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/resendlabs/resend-go"
)

// Client wraps the Resend API for the site's notification emails.
type Client struct {
	resend    *resend.Client
	fromEmail string
	fromName  string
	to        string
}

// NewClient creates a mail client. fromEmail defaults to a noreply address
// and to defaults to fromEmail when empty.
func NewClient(apiKey, fromEmail, fromName, to string) *Client {
	if fromEmail == "" {
		fromEmail = "noreply@localhost"
	}
	if to == "" {
		to = fromEmail
	}
	return &Client{
		resend:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		to:        to,
	}
}

// SendContactNotification emails the site owner about a submitted contact
// form, with reply-to set to the visitor's address.
func (c *Client) SendContactNotification(name, replyTo, message string) error {
	subject := fmt.Sprintf("New contact form message from %s", name)

	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.to},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    contactNotificationHTML(name, replyTo, message),
	}

	if _, err := c.resend.Emails.Send(request); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}

func contactNotificationHTML(name, replyTo, message string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:600px">`)
	b.WriteString(`<h2>New contact form message</h2>`)
	fmt.Fprintf(&b, `<p><strong>From:</strong> %s &lt;%s&gt;</p>`, html.EscapeString(name), html.EscapeString(replyTo))
	b.WriteString(`<hr>`)
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(line))
	}
	b.WriteString(`</div>`)
	return b.String()
}
