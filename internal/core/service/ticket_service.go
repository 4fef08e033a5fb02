package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/api/metrics"
	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

const ticketIDPrefix = "t_"

// announcementTag is the localized marker prefixed to broadcast subjects.
const announcementTag = "[សេចក្តីជូនដំណឹង]"

// TicketService owns the ticket collection: user-opened conversations,
// admin direct messages, and closed broadcast announcements.
type TicketService struct {
	store    ports.Store
	tokens   ports.TokenSource
	notifier ports.Notifier // optional, nil disables push notifications
	now      func() time.Time
	log      zerolog.Logger
}

func NewTicketService(store ports.Store, tokens ports.TokenSource, notifier ports.Notifier, log zerolog.Logger) *TicketService {
	return &TicketService{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Open implements ports.TicketService.
func (s *TicketService) Open(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error) {
	ticket, err := s.append(ctx, domain.Ticket{
		UserID:  domain.UserRecipient(userID),
		Subject: subject,
		Status:  domain.TicketOpen,
	}, domain.Message{SenderID: userID, Text: message})
	if err != nil {
		return nil, fmt.Errorf("open ticket: %w", err)
	}

	metrics.TicketsOpenedTotal.WithLabelValues("user").Inc()
	s.log.Info().Str("ticket_id", ticket.TicketID).Int64("user_id", userID).Msg("ticket opened")
	return ticket, nil
}

// Reply implements ports.TicketService. Replying always reopens: a closed
// ticket becomes active again on any new message, including an admin's own.
func (s *TicketService) Reply(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}

	idx := snap.FindTicket(ticketID)
	if idx < 0 {
		return nil, domain.ErrTicketNotFound
	}

	snap.Tickets[idx].Messages = append(snap.Tickets[idx].Messages, domain.Message{
		SenderID:  senderID,
		Text:      text,
		Timestamp: s.now().UTC(),
	})
	snap.Tickets[idx].Status = domain.TicketOpen

	if err := s.store.WriteAll(ctx, snap); err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}

	ticket := snap.Tickets[idx]
	metrics.TicketRepliesTotal.Inc()
	s.log.Info().Str("ticket_id", ticketID).Int64("sender_id", senderID).Msg("reply appended")

	// Ping the ticket owner when someone else wrote to their thread.
	if !ticket.UserID.Broadcast && ticket.UserID.UserID != senderID {
		s.notify(ctx, ticket.UserID.UserID, fmt.Sprintf("New reply on %q", ticket.Subject))
	}

	return &ticket, nil
}

// Broadcast implements ports.TicketService. Announcements are created
// closed: they are not an open conversation.
func (s *TicketService) Broadcast(ctx context.Context, adminID int64, subject, message string) (*domain.Ticket, error) {
	ticket, err := s.append(ctx, domain.Ticket{
		UserID:  domain.AllRecipients(),
		Subject: fmt.Sprintf("%s %s", announcementTag, subject),
		Status:  domain.TicketClosed,
	}, domain.Message{SenderID: adminID, Text: message})
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	metrics.TicketsOpenedTotal.WithLabelValues("broadcast").Inc()
	s.log.Info().Str("ticket_id", ticket.TicketID).Int64("admin_id", adminID).Msg("broadcast published")

	if s.notifier != nil {
		snap, rerr := s.store.ReadAll(ctx)
		if rerr != nil {
			s.log.Warn().Err(rerr).Msg("skipping broadcast notifications")
			return ticket, nil
		}
		for _, u := range snap.Users {
			if u.ID == adminID {
				continue
			}
			s.notify(ctx, u.ID, fmt.Sprintf("%s %s", announcementTag, subject))
		}
	}

	return ticket, nil
}

// DirectMessage implements ports.TicketService.
func (s *TicketService) DirectMessage(ctx context.Context, adminID, targetUserID int64, subject, message string) (*domain.Ticket, error) {
	ticket, err := s.append(ctx, domain.Ticket{
		UserID:  domain.UserRecipient(targetUserID),
		Subject: subject,
		Status:  domain.TicketOpen,
	}, domain.Message{SenderID: adminID, Text: message})
	if err != nil {
		return nil, fmt.Errorf("direct message: %w", err)
	}

	metrics.TicketsOpenedTotal.WithLabelValues("direct").Inc()
	s.log.Info().Str("ticket_id", ticket.TicketID).Int64("target_id", targetUserID).Msg("direct message sent")

	s.notify(ctx, targetUserID, fmt.Sprintf("New message: %s", subject))
	return ticket, nil
}

// append materialises a new ticket with its initial message and persists it.
func (s *TicketService) append(ctx context.Context, ticket domain.Ticket, initial domain.Message) (*domain.Ticket, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ticket.TicketID = s.tokens.Next(ticketIDPrefix)
	ticket.CreatedAt = now
	initial.Timestamp = now
	ticket.Messages = []domain.Message{initial}

	snap.Tickets = append(snap.Tickets, ticket)
	if err := s.store.WriteAll(ctx, snap); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// notify is fire-and-forget: delivery failures are logged, never surfaced.
func (s *TicketService) notify(ctx context.Context, userID int64, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, text); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("notification failed")
	}
}
