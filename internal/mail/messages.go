// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

package mail

import (
	"fmt"
	"html"

	"nextwave/internal/models"
)

// LeadNotification builds the internal email sent when a contact form
// lead arrives.
func LeadNotification(to string, lead *models.Lead) *Message {
	body := fmt.Sprintf(`<h2>New lead from the contact form</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Business:</strong> %s</p>
<p><strong>Service of interest:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		html.EscapeString(lead.Name),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.Phone),
		html.EscapeString(lead.BusinessName),
		html.EscapeString(lead.Service),
		html.EscapeString(lead.Message),
	)

	return &Message{
		To:      to,
		Subject: "New lead: " + lead.Name,
		HTML:    body,
	}
}

// SubscriberWelcome builds the thank-you email sent to a new newsletter
// subscriber.
func SubscriberWelcome(to string) *Message {
	return &Message{
		To:      to,
		Subject: "Welcome to the NextWave newsletter",
		HTML: `<h2>Thanks for subscribing!</h2>
<p>You're on the list. Expect practical insights on web development,
cybersecurity, AI automation, and IT support for growing businesses.</p>
<p>— The NextWave Digital Solutions team</p>`,
	}
}

// SubscriberNotification builds the internal email sent when someone
// joins the newsletter.
func SubscriberNotification(to, subscriberEmail string) *Message {
	return &Message{
		To:      to,
		Subject: "New newsletter subscriber",
		HTML: fmt.Sprintf(`<p>New newsletter signup: <strong>%s</strong></p>`,
			html.EscapeString(subscriberEmail)),
	}
}

// PasswordReset builds the email carrying a password reset link.
func PasswordReset(to, resetURL string) *Message {
	return &Message{
		To:      to,
		Subject: "Reset your NextWave admin password",
		HTML: fmt.Sprintf(`<h2>Password reset</h2>
<p>Someone requested a password reset for this address. The link below is
valid for one hour and can be used once.</p>
<p><a href="%s">Reset your password</a></p>
<p>If this wasn't you, ignore this email.</p>`,
			html.EscapeString(resetURL)),
	}
}
