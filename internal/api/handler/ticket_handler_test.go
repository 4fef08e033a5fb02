package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

type stubTicketService struct {
	openFn      func(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error)
	replyFn     func(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error)
	broadcastFn func(ctx context.Context, adminID int64, subject, message string) (*domain.Ticket, error)
	directFn    func(ctx context.Context, adminID, targetUserID int64, subject, message string) (*domain.Ticket, error)
}

func (s *stubTicketService) Open(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error) {
	return s.openFn(ctx, userID, subject, message)
}

func (s *stubTicketService) Reply(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error) {
	return s.replyFn(ctx, ticketID, senderID, text)
}

func (s *stubTicketService) Broadcast(ctx context.Context, adminID int64, subject, message string) (*domain.Ticket, error) {
	return s.broadcastFn(ctx, adminID, subject, message)
}

func (s *stubTicketService) DirectMessage(ctx context.Context, adminID, targetUserID int64, subject, message string) (*domain.Ticket, error) {
	return s.directFn(ctx, adminID, targetUserID, subject, message)
}

func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTicketHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTicketService{
		openFn: func(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error) {
			if userID != 42 || subject != "broken poster" {
				t.Fatalf("unexpected args: %d %s", userID, subject)
			}
			return &domain.Ticket{
				TicketID: "t_1700000000000",
				UserID:   domain.UserRecipient(userID),
				Subject:  subject,
				Status:   domain.TicketOpen,
				Messages: []domain.Message{{SenderID: userID, Text: message}},
			}, nil
		},
	}
	handler := NewTicketHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/tickets", `{"userId":42,"subject":"broken poster","message":"it arrived torn"}`)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	ticket, ok := resp["ticket"].(map[string]any)
	if !ok {
		t.Fatalf("expected ticket in response: %v", resp)
	}
	if ticket["ticketId"] != "t_1700000000000" || ticket["status"] != "open" {
		t.Fatalf("unexpected ticket: %v", ticket)
	}
	// One-user recipients serialise as the bare numeric id.
	if ticket["userId"] != float64(42) {
		t.Fatalf("unexpected recipient: %v", ticket["userId"])
	}
}

func TestTicketHandler_Create_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTicketService{
		openFn: func(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTicketHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/tickets", `{"userId":42}`)

	err := handler.Create(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	_ = rec
}

func TestTicketHandler_Reply_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTicketService{
		replyFn: func(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error) {
			if ticketID != "t_1" || senderID != 7 {
				t.Fatalf("unexpected args: %s %d", ticketID, senderID)
			}
			return &domain.Ticket{TicketID: ticketID, UserID: domain.UserRecipient(42), Status: domain.TicketOpen}, nil
		},
	}
	handler := NewTicketHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/tickets/t_1/reply", `{"senderId":7,"text":"on it"}`)
	c.SetParamNames("ticketId")
	c.SetParamValues("t_1")

	if err := handler.Reply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %v", resp)
	}
}

func TestTicketHandler_Reply_NotFound(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTicketService{
		replyFn: func(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error) {
			return nil, domain.ErrTicketNotFound
		},
	}
	handler := NewTicketHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/tickets/t_missing/reply", `{"senderId":7,"text":"hello"}`)
	c.SetParamNames("ticketId")
	c.SetParamValues("t_missing")

	_ = handler.Reply(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != false || resp["message"] != "Ticket not found" {
		t.Fatalf("unexpected envelope: %v", resp)
	}
}

func TestTicketHandler_Reply_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTicketService{
		replyFn: func(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTicketHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/tickets/t_1/reply", "{")
	c.SetParamNames("ticketId")
	c.SetParamValues("t_1")

	_ = handler.Reply(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
