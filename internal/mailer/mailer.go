package mailer

import (
	"context"
	"fmt"

	"github.com/hdcasedi/competenceo/internal/mykafka"
)

// Mailer is the external mail collaborator. Delivery is best-effort:
// callers log a failure and carry on, the enclosing operation still
// succeeds.
type Mailer interface {
	SendInvite(ctx context.Context, to, code string) error
}

// KafkaMailer hands mail off to the mail_events topic; an out-of-process
// worker owns the SMTP transport.
type KafkaMailer struct {
	Producer *mykafka.Producer
	BaseURL  string
}

type inviteMail struct {
	Type      string `json:"type"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Code      string `json:"code"`
	SignupURL string `json:"signup_url"`
}

func (m *KafkaMailer) SendInvite(ctx context.Context, to, code string) error {
	event := inviteMail{
		Type:      "teacher_invite",
		To:        to,
		Subject:   "Invitation enseignant",
		Code:      code,
		SignupURL: fmt.Sprintf("%s/signup?code=%s", m.BaseURL, code),
	}
	return m.Producer.PublishEvent(ctx, to, event)
}

// Nop drops mail on the floor; used when no brokers are configured and in
// tests.
type Nop struct{}

func (Nop) SendInvite(context.Context, string, string) error { return nil }
