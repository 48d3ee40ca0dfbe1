package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"consultoc-api/internal/money"

	"github.com/rs/zerolog"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends the welcome e-mail to the payer and a lead alert to
// the sales inbox.
type SMTPNotifier struct {
	host      string
	port      string
	user      string
	password  string
	from      string
	leadInbox string
	send      sendFunc
	log       zerolog.Logger
}

type SMTPConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	From      string
	LeadInbox string
}

func NewSMTPNotifier(cfg SMTPConfig, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:      cfg.Host,
		port:      cfg.Port,
		user:      cfg.User,
		password:  cfg.Password,
		from:      cfg.From,
		leadInbox: cfg.LeadInbox,
		send:      smtp.SendMail,
		log:       log.With().Str("component", "smtp_notifier").Logger(),
	}
}

func (s *SMTPNotifier) PaymentConfirmed(_ context.Context, n PaymentNotice) error {
	var errs []error

	if n.CustomerEmail != "" {
		if err := s.mail(n.CustomerEmail, "Bem-vindo à Consultoc", welcomeBody(n)); err != nil {
			errs = append(errs, fmt.Errorf("welcome e-mail: %w", err))
		}
	}
	if s.leadInbox != "" {
		if err := s.mail(s.leadInbox, "Novo pagamento confirmado: "+n.Plan, leadBody(n)); err != nil {
			errs = append(errs, fmt.Errorf("lead alert: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.log.Info().Str("session_id", n.SessionID).Msg("payment notifications sent")
	return nil
}

func (s *SMTPNotifier) mail(to, subject, body string) error {
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return s.send(s.host+":"+s.port, auth, s.from, []string{to}, message)
}

func welcomeBody(n PaymentNotice) string {
	name := n.CustomerName
	if name == "" {
		name = "cliente"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s!\n\n", name)
	fmt.Fprintf(&b, "Recebemos o seu pagamento de %s referente ao plano %q.\n", money.FormatMinor(n.AmountMinor, n.Currency), n.Plan)
	if n.ValuationID != "" {
		fmt.Fprintf(&b, "O laudo da avaliação %s ficará disponível em instantes.\n", n.ValuationID)
	}
	b.WriteString("\nEquipe Consultoc")
	return b.String()
}

func leadBody(n PaymentNotice) string {
	return fmt.Sprintf("Plano: %s\nValor: %s\nE-mail: %s\nNome: %s\nAvaliação: %s\nSessão Stripe: %s",
		n.Plan, money.FormatMinor(n.AmountMinor, n.Currency), n.CustomerEmail, n.CustomerName, n.ValuationID, n.SessionID)
}
