package notify

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestNotifier(leadInbox string, fail map[string]error) (*SMTPNotifier, *[]sentMail) {
	var sent []sentMail
	n := NewSMTPNotifier(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      "587",
		User:      "user",
		Password:  "secret",
		From:      "laudos@consultoc.com.br",
		LeadInbox: leadInbox,
	}, zerolog.Nop())
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if err := fail[to[0]]; err != nil {
			return err
		}
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return n, &sent
}

func notice() PaymentNotice {
	return PaymentNotice{
		SessionID:     "cs_1",
		Plan:          "pro",
		CustomerEmail: "maria@example.com",
		CustomerName:  "Maria",
		AmountMinor:   59900,
		Currency:      "brl",
	}
}

func TestSMTPNotifier_SendsWelcomeAndLead(t *testing.T) {
	n, sent := newTestNotifier("vendas@consultoc.com.br", nil)

	require.NoError(t, n.PaymentConfirmed(context.Background(), notice()))
	require.Len(t, *sent, 2)

	welcome := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", welcome.addr)
	assert.Equal(t, []string{"maria@example.com"}, welcome.to)
	assert.Contains(t, welcome.msg, "Subject: Bem-vindo à Consultoc")
	assert.Contains(t, welcome.msg, "Olá, Maria!")
	assert.Contains(t, welcome.msg, "R$ 599,00")

	lead := (*sent)[1]
	assert.Equal(t, []string{"vendas@consultoc.com.br"}, lead.to)
	assert.Contains(t, lead.msg, "Sessão Stripe: cs_1")
}

func TestSMTPNotifier_NoRecipients(t *testing.T) {
	n, sent := newTestNotifier("", nil)
	in := notice()
	in.CustomerEmail = ""

	require.NoError(t, n.PaymentConfirmed(context.Background(), in))
	assert.Empty(t, *sent)
}

func TestSMTPNotifier_PartialFailure(t *testing.T) {
	boom := errors.New("connection refused")
	n, sent := newTestNotifier("vendas@consultoc.com.br", map[string]error{"maria@example.com": boom})

	err := n.PaymentConfirmed(context.Background(), notice())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "welcome e-mail")
	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"vendas@consultoc.com.br"}, (*sent)[0].to)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	require.NoError(t, n.PaymentConfirmed(context.Background(), notice()))
	assert.Contains(t, buf.String(), `"session_id":"cs_1"`)
	assert.Contains(t, buf.String(), `"component":"notifier"`)
}
