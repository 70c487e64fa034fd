// Package concierge runs the two-step slot-filling dialogues that turn free
// text into tasks and calendar events. State between turns lives in a
// persisted per-user PendingAction; completion, cancellation and expiry all
// delete it.
package concierge

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which flow a pending action belongs to.
type Kind string

const (
	KindTask  Kind = "create_task"
	KindEvent Kind = "create_event"
)

// Flow steps. Step 1 waits for a title/scope, step 2 for a date/time.
const (
	StepScope    = 1
	StepDateTime = 2
)

// PendingAction is the persisted state of an in-progress flow. At most one
// exists per user. EventType is a structured slot for the event flow; it used
// to travel as a text marker inside the description, which was fragile.
type PendingAction struct {
	UserID    uuid.UUID
	Kind      Kind
	Step      int
	Title     string
	EventType string
	UpdatedAt time.Time
}

// PendingStore persists at most one PendingAction per user.
type PendingStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*PendingAction, error)
	Put(ctx context.Context, pa *PendingAction) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Task is the creation payload handed to the planner collaborator.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	DueDate     time.Time
	Status      string
}

// Event is the creation payload for a calendar event.
type Event struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	EventType string
	StartAt   time.Time
	Notes     string
}

// Planner is the task/event creation capability the flows drive. The recent
// lookups back duplicate-submission suppression.
type Planner interface {
	CreateTask(ctx context.Context, t Task) error
	CreateEvent(ctx context.Context, e Event) error
	RecentTaskExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error)
	RecentEventExists(ctx context.Context, userID uuid.UUID, title string, startAt time.Time, since time.Time) (bool, error)
}

// Notification is the in-app notification written alongside each creation.
type Notification struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Title  string
	Body   string
	Link   string
	Unread bool
}

// Notifier creates in-app notifications and answers duplicate checks.
type Notifier interface {
	CreateNotification(ctx context.Context, n Notification) error
	RecentNotificationExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error)
}

// Outcome is what a flow turn produced. CreatedTask/CreatedEvent are set only
// on the turn that actually created the entity, so the caller can fan events
// out.
type Outcome struct {
	Reply               string
	CreatedTask         *Task
	CreatedEvent        *Event
	CreatedNotification *Notification
}
