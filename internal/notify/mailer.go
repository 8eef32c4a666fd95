// Package notify emails reservation receipts over SMTP.
package notify

import (
	"bytes"
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/karting-reservation/internal/config"
)

const (
	receiptSubject    = "Comprobante de Pago - Kartódromo"
	receiptBody       = "Adjunto encontrarás el comprobante de tu reserva."
	receiptAttachment = "Comprobante.pdf"
)

// ErrNoSender is returned when no From address is configured.
var ErrNoSender = errors.New("smtp sender address not configured")

// sender is the part of *gomail.Dialer the mailer needs.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends one receipt per message.
type Mailer struct {
	from   string
	sender sender
	log    *zap.Logger
}

// NewMailer dials cfg's SMTP relay for every message.
func NewMailer(cfg config.SMTPConfig, log *zap.Logger) *Mailer {
	return newMailer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass), log)
}

func newMailer(from string, s sender, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{from: from, sender: s, log: log}
}

// SendReceipt mails pdf to a single address as Comprobante.pdf.
func (m *Mailer) SendReceipt(ctx context.Context, to string, pdf []byte) error {
	if m.from == "" {
		return ErrNoSender
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", receiptSubject)
	msg.SetBody("text/plain", receiptBody)
	msg.Attach(receiptAttachment,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(pdf))
			return err
		}),
	)

	if err := m.sender.DialAndSend(msg); err != nil {
		m.log.Error("receipt email failed", zap.String("to", to), zap.Error(err))
		return err
	}
	m.log.Info("receipt email sent", zap.String("to", to))
	return nil
}
