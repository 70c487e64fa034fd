package concierge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/textnorm"
	"github.com/campuscalm/brain/internal/when"
)

// Defaults for time-based invalidation, overridable via Config.
const (
	DefaultTTL             = 15 * time.Minute
	DefaultDuplicateWindow = 2 * time.Minute
)

// Phrases that abort a flow at any step.
var cancelPhrases = []string{
	"cancelar", "cancela", "pode cancelar", "deixa pra la", "deixa para la",
	"esquece", "esquecer", "nao quero mais", "desiste", "cancel",
	"never mind", "nevermind", "forget it",
}

var shortNegations = map[string]bool{
	"nao": true, "no": true, "nop": true, "nope": true, "deixa": true,
}

// Event type keywords → canonical type slug.
var eventTypes = []struct {
	keywords []string
	slug     string
}{
	{[]string{"prova", "teste", "exame", "exam", "test"}, "prova"},
	{[]string{"entrega", "prazo", "delivery", "deadline"}, "entrega"},
	{[]string{"apresentacao", "seminario", "presentation"}, "apresentacao"},
	{[]string{"aula", "class", "lecture"}, "aula"},
	{[]string{"reuniao", "encontro", "meeting"}, "reuniao"},
	{[]string{"outro", "outra", "other"}, "outro"},
}

const (
	promptTaskScope     = "Vamos criar sua tarefa. O que você precisa fazer? Pode me dar um título curto."
	promptEventScope    = "Vamos agendar. Qual é o compromisso? Me diz um título curto."
	promptTaskWhen      = "Anotado: \"%s\". Para quando é essa tarefa? Pode mandar algo como \"amanhã\", \"sexta\" ou \"12/05\"."
	promptEventWhen     = "Anotado: \"%s\". Quando vai ser? Pode mandar data e horário, tipo \"amanhã 18h\" ou \"12/05 às 14:30\"."
	promptEventWhenOnly = "Entendi o tipo. E quando vai ser? Pode mandar data e horário, tipo \"amanhã 18h\"."
	promptRetry         = "Não consegui entender a data. Tenta um formato como \"amanhã\", \"sexta\" ou \"12/05 às 14h\"."
	replyCancelled      = "Tudo bem, cancelei por aqui. Se quiser retomar é só me chamar."
	replyDuplicate      = "Isso eu já criei agora há pouco 😉 Está na sua lista."
	confirmTask         = "Tarefa \"%s\" criada para %s. Vou te lembrar por aqui 😉"
	confirmEvent        = "Combinado! \"%s\" agendado para %s."
)

// defaultEventHour is used when the user gives only a date for an event.
const defaultEventHour = 9

// Config carries the tunables, injected so tests can shrink the windows.
type Config struct {
	TTL             time.Duration
	DuplicateWindow time.Duration
}

// Concierge drives both slot-filling flows.
type Concierge struct {
	pending PendingStore
	planner Planner
	notify  Notifier
	cfg     Config
	now     func() time.Time
	logger  *slog.Logger
}

// New wires a concierge. A nil now falls back to time.Now.
func New(pending PendingStore, planner Planner, notify Notifier, cfg Config, now func() time.Time, logger *slog.Logger) *Concierge {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = DefaultDuplicateWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Concierge{pending: pending, planner: planner, notify: notify, cfg: cfg, now: now, logger: logger}
}

// Load returns the user's live pending action, lazily deleting one past TTL.
func (c *Concierge) Load(ctx context.Context, userID uuid.UUID) (*PendingAction, error) {
	pa, err := c.pending.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load pending action: %w", err)
	}
	if pa == nil {
		return nil, nil
	}
	if c.now().Sub(pa.UpdatedAt) > c.cfg.TTL {
		if err := c.pending.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("expire pending action: %w", err)
		}
		c.logger.Debug("pending action expired", "user_id", userID, "kind", pa.Kind)
		return nil, nil
	}
	return pa, nil
}

// IsCancellation reports whether the message aborts a flow: a terse negation
// or a short message carrying a cancel phrase. Long messages never cancel, so
// "nao posso esquecer da prova" still reaches the date parser.
func IsCancellation(message string) bool {
	normalized := textnorm.Normalize(message)
	if shortNegations[normalized] {
		return true
	}
	if len(strings.Fields(normalized)) > 4 {
		return false
	}
	for _, p := range cancelPhrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// Cancel deletes the pending action and acknowledges. No entity is created.
func (c *Concierge) Cancel(ctx context.Context, userID uuid.UUID) (Outcome, error) {
	if err := c.pending.Delete(ctx, userID); err != nil {
		return Outcome{}, fmt.Errorf("cancel pending action: %w", err)
	}
	return Outcome{Reply: replyCancelled}, nil
}

// Start opens a flow for the user. When the triggering message already
// carries an extractable title the scope step is skipped and only date/time
// is asked for.
func (c *Concierge) Start(ctx context.Context, userID uuid.UUID, kind Kind, message string) (Outcome, error) {
	pa := &PendingAction{
		UserID:    userID,
		Kind:      kind,
		Step:      StepScope,
		UpdatedAt: c.now(),
	}
	if kind == KindEvent {
		pa.EventType = detectEventType(message)
	}

	var out Outcome
	if title, ok := ExtractTitle(message); ok {
		pa.Title = title
		pa.Step = StepDateTime
		if kind == KindTask {
			out.Reply = fmt.Sprintf(promptTaskWhen, title)
		} else {
			out.Reply = fmt.Sprintf(promptEventWhen, title)
		}
	} else if kind == KindTask {
		out.Reply = promptTaskScope
	} else {
		out.Reply = promptEventScope
	}

	if err := c.pending.Put(ctx, pa); err != nil {
		return Outcome{}, fmt.Errorf("start %s flow: %w", kind, err)
	}
	return out, nil
}

// Continue advances a loaded flow with the user's reply.
func (c *Concierge) Continue(ctx context.Context, pa *PendingAction, message string) (Outcome, error) {
	switch pa.Step {
	case StepScope:
		return c.continueScope(ctx, pa, message)
	case StepDateTime:
		return c.continueDateTime(ctx, pa, message)
	default:
		// Unknown step means corrupted state; drop it and start over cleanly.
		if err := c.pending.Delete(ctx, pa.UserID); err != nil {
			return Outcome{}, fmt.Errorf("drop corrupted pending action: %w", err)
		}
		return Outcome{Reply: promptRetry}, nil
	}
}

func (c *Concierge) continueScope(ctx context.Context, pa *PendingAction, message string) (Outcome, error) {
	title := strings.TrimSpace(message)
	if title == "" {
		pa.UpdatedAt = c.now()
		if err := c.pending.Put(ctx, pa); err != nil {
			return Outcome{}, fmt.Errorf("refresh pending action: %w", err)
		}
		if pa.Kind == KindTask {
			return Outcome{Reply: promptTaskScope}, nil
		}
		return Outcome{Reply: promptEventScope}, nil
	}

	pa.Title = title
	pa.Step = StepDateTime
	pa.UpdatedAt = c.now()
	if pa.Kind == KindEvent && pa.EventType == "" {
		pa.EventType = detectEventType(message)
	}
	if err := c.pending.Put(ctx, pa); err != nil {
		return Outcome{}, fmt.Errorf("advance pending action: %w", err)
	}

	if pa.Kind == KindTask {
		return Outcome{Reply: fmt.Sprintf(promptTaskWhen, title)}, nil
	}
	return Outcome{Reply: fmt.Sprintf(promptEventWhen, title)}, nil
}

func (c *Concierge) continueDateTime(ctx context.Context, pa *PendingAction, message string) (Outcome, error) {
	now := c.now()
	date, dateOK := when.ParseDate(message, now)
	hour, minute, clockOK := when.ParseClock(message)

	if pa.Kind == KindEvent {
		if t := detectEventType(message); t != "" {
			pa.EventType = t
		}
		if !dateOK && !clockOK && pa.EventType != "" {
			// Type-only answer: remember it, ask again just for when.
			pa.UpdatedAt = now
			if err := c.pending.Put(ctx, pa); err != nil {
				return Outcome{}, fmt.Errorf("refresh pending action: %w", err)
			}
			return Outcome{Reply: promptEventWhenOnly}, nil
		}
	}

	if !dateOK && !clockOK {
		pa.UpdatedAt = now
		if err := c.pending.Put(ctx, pa); err != nil {
			return Outcome{}, fmt.Errorf("refresh pending action: %w", err)
		}
		return Outcome{Reply: promptRetry}, nil
	}

	if !dateOK {
		// Time without a date means today.
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	if pa.Kind == KindTask {
		return c.createTask(ctx, pa, date)
	}
	if !clockOK {
		hour, minute = defaultEventHour, 0
	}
	startAt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
	return c.createEvent(ctx, pa, startAt)
}

func (c *Concierge) createTask(ctx context.Context, pa *PendingAction, due time.Time) (Outcome, error) {
	since := c.now().Add(-c.cfg.DuplicateWindow)
	dup, err := c.planner.RecentTaskExists(ctx, pa.UserID, pa.Title, since)
	if err != nil {
		return Outcome{}, fmt.Errorf("check duplicate task: %w", err)
	}
	if !dup {
		dup, err = c.notify.RecentNotificationExists(ctx, pa.UserID, notificationTitle(KindTask, pa.Title), since)
		if err != nil {
			return Outcome{}, fmt.Errorf("check duplicate notification: %w", err)
		}
	}
	if dup {
		if err := c.pending.Delete(ctx, pa.UserID); err != nil {
			return Outcome{}, fmt.Errorf("clear pending action: %w", err)
		}
		return Outcome{Reply: replyDuplicate}, nil
	}

	task := Task{
		ID:      uuid.New(),
		UserID:  pa.UserID,
		Title:   pa.Title,
		DueDate: due,
		Status:  "todo",
	}
	if err := c.planner.CreateTask(ctx, task); err != nil {
		return Outcome{}, fmt.Errorf("create task: %w", err)
	}
	note := Notification{
		ID:     uuid.New(),
		UserID: pa.UserID,
		Title:  notificationTitle(KindTask, pa.Title),
		Body:   fmt.Sprintf("Tarefa para %s criada pelo assistente.", due.Format("02/01")),
		Link:   "/tasks/" + task.ID.String(),
		Unread: true,
	}
	if err := c.notify.CreateNotification(ctx, note); err != nil {
		return Outcome{}, fmt.Errorf("create notification: %w", err)
	}
	if err := c.pending.Delete(ctx, pa.UserID); err != nil {
		return Outcome{}, fmt.Errorf("clear pending action: %w", err)
	}
	c.logger.Info("task created via concierge", "user_id", pa.UserID, "task_id", task.ID)

	return Outcome{
		Reply:               fmt.Sprintf(confirmTask, task.Title, due.Format("02/01/2006")),
		CreatedTask:         &task,
		CreatedNotification: &note,
	}, nil
}

func (c *Concierge) createEvent(ctx context.Context, pa *PendingAction, startAt time.Time) (Outcome, error) {
	since := c.now().Add(-c.cfg.DuplicateWindow)
	dup, err := c.planner.RecentEventExists(ctx, pa.UserID, pa.Title, startAt, since)
	if err != nil {
		return Outcome{}, fmt.Errorf("check duplicate event: %w", err)
	}
	if !dup {
		dup, err = c.notify.RecentNotificationExists(ctx, pa.UserID, notificationTitle(KindEvent, pa.Title), since)
		if err != nil {
			return Outcome{}, fmt.Errorf("check duplicate notification: %w", err)
		}
	}
	if dup {
		if err := c.pending.Delete(ctx, pa.UserID); err != nil {
			return Outcome{}, fmt.Errorf("clear pending action: %w", err)
		}
		return Outcome{Reply: replyDuplicate}, nil
	}

	eventType := pa.EventType
	if eventType == "" {
		eventType = "outro"
	}
	event := Event{
		ID:        uuid.New(),
		UserID:    pa.UserID,
		Title:     pa.Title,
		EventType: eventType,
		StartAt:   startAt,
	}
	if err := c.planner.CreateEvent(ctx, event); err != nil {
		return Outcome{}, fmt.Errorf("create event: %w", err)
	}
	note := Notification{
		ID:     uuid.New(),
		UserID: pa.UserID,
		Title:  notificationTitle(KindEvent, pa.Title),
		Body:   fmt.Sprintf("Evento agendado para %s.", startAt.Format("02/01 15:04")),
		Link:   "/agenda/" + event.ID.String(),
		Unread: true,
	}
	if err := c.notify.CreateNotification(ctx, note); err != nil {
		return Outcome{}, fmt.Errorf("create notification: %w", err)
	}
	if err := c.pending.Delete(ctx, pa.UserID); err != nil {
		return Outcome{}, fmt.Errorf("clear pending action: %w", err)
	}
	c.logger.Info("event created via concierge", "user_id", pa.UserID, "event_id", event.ID)

	return Outcome{
		Reply:               fmt.Sprintf(confirmEvent, event.Title, startAt.Format("02/01 às 15:04")),
		CreatedEvent:        &event,
		CreatedNotification: &note,
	}, nil
}

func notificationTitle(kind Kind, title string) string {
	if kind == KindTask {
		return "Nova tarefa: " + title
	}
	return "Novo evento: " + title
}

func detectEventType(message string) string {
	normalized := textnorm.Normalize(message)
	words := textnorm.Words(normalized)
	for _, et := range eventTypes {
		if textnorm.ContainsAny(normalized, words, et.keywords) {
			return et.slug
		}
	}
	return ""
}
