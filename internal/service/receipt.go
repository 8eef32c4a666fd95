package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// ReceiptRenderer turns a priced reservation into a PDF document.
type ReceiptRenderer interface {
	Render(r model.Reservation) ([]byte, error)
}

// ReceiptNotifier delivers a rendered receipt to one address.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, to string, pdf []byte) error
}

// ReceiptService renders the receipt of a stored reservation and emails it
// to every customer on it.
type ReceiptService struct {
	reservations *ReservationService
	renderer     ReceiptRenderer
	notifier     ReceiptNotifier
	log          *zap.Logger
}

func NewReceiptService(reservations *ReservationService, renderer ReceiptRenderer, notifier ReceiptNotifier, log *zap.Logger) *ReceiptService {
	if reservations == nil || renderer == nil || notifier == nil {
		panic("nil dependency passed to NewReceiptService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{reservations: reservations, renderer: renderer, notifier: notifier, log: log}
}

// Send renders the receipt once and mails it to each customer in order.
// The first failed delivery aborts the remaining ones and no partial list
// is returned.
func (s *ReceiptService) Send(ctx context.Context, reservationID uint64) ([]string, error) {
	res, err := s.reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.Render(res)
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	s.log.Debug("receipt rendered", zap.Uint64("reservation_id", res.ID), zap.Int("bytes", len(pdf)))

	sent := make([]string, 0, len(res.Customers))
	for _, c := range res.Customers {
		if err := s.notifier.SendReceipt(ctx, c.Email, pdf); err != nil {
			return nil, fmt.Errorf("send receipt to %s: %w", c.Email, err)
		}
		s.log.Info("receipt sent", zap.Uint64("reservation_id", res.ID), zap.String("email", c.Email))
		sent = append(sent, c.Email)
	}
	return sent, nil
}
