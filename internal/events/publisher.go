// Package events publishes brain activity to NATS so other campus
// services (planner, notifications, analytics) can react to what the
// chat widget does without polling the database.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects emitted by the brain service.
const (
	SubjectTurnHandled         = "campus.brain.turn.handled"
	SubjectTaskCreated         = "campus.brain.task.created"
	SubjectEventCreated        = "campus.brain.event.created"
	SubjectNotificationCreated = "campus.brain.notification.created"
)

// TurnHandled is emitted once per processed widget message.
type TurnHandled struct {
	UserID    string `json:"user_id"`
	Category  string `json:"category,omitempty"`
	Locale    string `json:"locale"`
	HandledAt string `json:"handled_at"`
}

// TaskCreated is emitted when a concierge flow lands a task.
type TaskCreated struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	DueAt  string `json:"due_at"`
}

// EventCreated is emitted when a concierge flow lands a calendar event.
type EventCreated struct {
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	StartsAt  string `json:"starts_at"`
}

// NotificationCreated is emitted for each in-app notification row, so the
// platform's delivery queue can pick it up without polling.
type NotificationCreated struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Title          string `json:"title"`
	Link           string `json:"link"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) publish(subject string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("marshal event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn("publish event", "subject", subject, "error", err)
	}
}

// TurnHandled reports a processed message. A nil Publisher is a no-op so
// the engine can run without a broker in development.
func (p *Publisher) TurnHandled(userID uuid.UUID, category, locale string, at time.Time) {
	if p == nil {
		return
	}
	p.publish(SubjectTurnHandled, TurnHandled{
		UserID:    userID.String(),
		Category:  category,
		Locale:    locale,
		HandledAt: at.UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) TaskCreated(taskID, userID uuid.UUID, title string, dueAt time.Time) {
	if p == nil {
		return
	}
	p.publish(SubjectTaskCreated, TaskCreated{
		TaskID: taskID.String(),
		UserID: userID.String(),
		Title:  title,
		DueAt:  dueAt.UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) EventCreated(eventID, userID uuid.UUID, title, eventType string, startsAt time.Time) {
	if p == nil {
		return
	}
	p.publish(SubjectEventCreated, EventCreated{
		EventID:   eventID.String(),
		UserID:    userID.String(),
		Title:     title,
		EventType: eventType,
		StartsAt:  startsAt.UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) NotificationCreated(notificationID, userID uuid.UUID, title, link string) {
	if p == nil {
		return
	}
	p.publish(SubjectNotificationCreated, NotificationCreated{
		NotificationID: notificationID.String(),
		UserID:         userID.String(),
		Title:          title,
		Link:           link,
	})
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.conn.Close()
}
