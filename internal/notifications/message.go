// Package notifications composes the emails sent to editors and fact
// checkers and hands them to the job queue for delivery.
package notifications

import (
	"net/mail"

	"govpub/internal/platform/config"
)

const noReplyAddress = "inside-government@digital.cabinet-office.gov.uk"

// Attachment is a file sent with a message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Message is a composed email with a single recipient.
type Message struct {
	Kind        string       `json:"kind"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// NoReplyAddress formats the sender. Outside production the display name
// carries the environment label so test mail is recognisable.
func NoReplyAddress(environmentLabel string) string {
	name := "GOV.UK publishing"
	if !config.IsProductionLabel(environmentLabel) {
		name = "[GOV.UK " + environmentLabel + "] " + name
	}
	addr := mail.Address{Name: name, Address: noReplyAddress}
	return addr.String()
}
