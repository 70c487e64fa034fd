package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/classify"
	"github.com/campuscalm/brain/internal/concierge"
	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/intent"
	"github.com/campuscalm/brain/internal/reply"
	"github.com/campuscalm/brain/internal/textnorm"
)

// ErrEmptyMessage rejects blank input before the engine runs; no Interaction
// is logged for it.
var ErrEmptyMessage = errors.New("empty message")

// MaxMessageLen bounds inbound chat messages, counted in runes.
const MaxMessageLen = 300

// ErrMessageTooLong rejects oversized input.
var ErrMessageTooLong = errors.New("message too long")

const originWidget = "widget"

// Engine handles one chat turn end to end.
type Engine struct {
	content    content.Repository
	history    History
	session    Session
	classifier *classify.Classifier
	selector   *reply.Selector
	concierge  *concierge.Concierge
	settings   Settings
	pick       reply.Picker
	now        func() time.Time
	logger     *slog.Logger
}

// New wires the engine. Nil pick and now fall back to math/rand and time.Now.
func New(
	repo content.Repository,
	history History,
	session Session,
	conc *concierge.Concierge,
	settings Settings,
	pick reply.Picker,
	now func() time.Time,
	logger *slog.Logger,
) *Engine {
	if pick == nil {
		pick = rand.Intn
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		content:    repo,
		history:    history,
		session:    session,
		classifier: classify.New(repo),
		selector:   reply.NewSelector(pick),
		concierge:  conc,
		settings:   settings,
		pick:       pick,
		now:        now,
		logger:     logger,
	}
}

// Now reports the engine's clock, which tests may have pinned.
func (e *Engine) Now() time.Time {
	return e.now()
}

// HandleMessage runs the full turn pipeline and appends exactly one
// Interaction row, whatever branch answered.
func (e *Engine) HandleMessage(ctx context.Context, userID uuid.UUID, message, localeSignal string) (Result, error) {
	raw := strings.TrimSpace(message)
	if raw == "" {
		return Result{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(raw) > MaxMessageLen {
		return Result{}, ErrMessageTooLong
	}

	normalized := textnorm.Normalize(raw)
	locale := classify.DetectLocale(localeSignal, normalized)
	now := e.now()

	lastReply, err := e.history.LastReply(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load last reply: %w", err)
	}
	history, err := e.history.Recent(ctx, userID, now.Add(-e.settings.MemoryWindow), e.settings.HistoryLimit)
	if err != nil {
		return Result{}, fmt.Errorf("load history: %w", err)
	}
	pending, err := e.concierge.Load(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	pendingMode := intent.Mode("")
	if pending != nil {
		if pending.Kind == concierge.KindTask {
			pendingMode = intent.ModeTask
		} else {
			pendingMode = intent.ModeEvent
		}
	}
	mode := intent.Decide(intent.Score(raw), pendingMode)

	res, err := e.dispatch(ctx, turn{
		userID:     userID,
		raw:        raw,
		normalized: normalized,
		locale:     locale,
		lastReply:  lastReply,
		history:    history,
		pending:    pending,
		mode:       mode,
		now:        now,
	})
	if err != nil {
		return Result{}, err
	}

	if err := e.history.Append(ctx, Interaction{
		ID:           uuid.New(),
		UserID:       userID,
		Message:      raw,
		CategorySlug: res.CategorySlug,
		Reply:        res.Reply,
		Origin:       originWidget,
		CreatedAt:    now,
	}); err != nil {
		return Result{}, fmt.Errorf("append interaction: %w", err)
	}

	res.Locale = string(locale)
	e.logger.Debug("turn handled",
		"user_id", userID,
		"mode", mode,
		"category", res.CategorySlug,
		"locale", locale,
	)
	return res, nil
}

// turn carries the per-request state through the pipeline.
type turn struct {
	userID     uuid.UUID
	raw        string
	normalized string
	locale     classify.Locale
	lastReply  string
	history    []Interaction
	pending    *concierge.PendingAction
	mode       intent.Mode
	now        time.Time
}

func (e *Engine) dispatch(ctx context.Context, t turn) (Result, error) {
	// A live flow owns the turn: cancellation first, then the emotional
	// interrupt, then normal continuation.
	if t.pending != nil {
		if concierge.IsCancellation(t.raw) {
			out, err := e.concierge.Cancel(ctx, t.userID)
			if err != nil {
				return Result{}, err
			}
			return Result{Reply: out.Reply}, nil
		}
		if t.mode == intent.ModeEmotional {
			// Flow step stays untouched; the turn is answered as support.
			return e.classifyAndReply(ctx, t)
		}
		out, err := e.concierge.Continue(ctx, t.pending, t.raw)
		if err != nil {
			return Result{}, err
		}
		return conciergeResult(out), nil
	}

	switch t.mode {
	case intent.ModeTask:
		if intent.HasTaskCreationIntent(t.raw) {
			out, err := e.concierge.Start(ctx, t.userID, concierge.KindTask, t.raw)
			if err != nil {
				return Result{}, err
			}
			return conciergeResult(out), nil
		}
	case intent.ModeEvent:
		if intent.HasEventCreationIntent(t.raw) {
			out, err := e.concierge.Start(ctx, t.userID, concierge.KindEvent, t.raw)
			if err != nil {
				return Result{}, err
			}
			return conciergeResult(out), nil
		}
	case intent.ModeSocial:
		if isExplicitGreeting(t.normalized) {
			return e.greet(ctx, t)
		}
	}

	if text, ok := e.shortDirectionFollowUp(t.normalized, t.lastReply, t.locale); ok {
		return Result{Reply: text, CategorySlug: slugStress, Emoji: e.emojiFor(ctx, slugStress)}, nil
	}

	if slug := shieldChoice(t.normalized, t.lastReply); slug != "" {
		return e.replyForCategory(ctx, t, slug)
	}

	return e.classifyAndReply(ctx, t)
}

// classifyAndReply is orchestrator step 12 onward: classification, the
// short-direction entry, the anxiety+exam special case, contextual override,
// plain category reply, fallback/shielding — plus the micro-intervention.
func (e *Engine) classifyAndReply(ctx context.Context, t turn) (Result, error) {
	category, err := e.classifier.Detect(ctx, t.normalized, t.locale)
	if err != nil {
		return Result{}, fmt.Errorf("classify: %w", err)
	}

	if shortDirectionEntry(t.normalized, t.history) {
		return Result{
			Reply:        shortDirectionMain[t.locale],
			CategorySlug: slugStress,
			Emoji:        e.emojiFor(ctx, slugStress),
		}, nil
	}

	words := textnorm.Words(t.normalized)
	if textnorm.ContainsAny(t.normalized, words, anxietyKeywords) &&
		textnorm.ContainsAny(t.normalized, words, examKeywords) {
		res := Result{
			Reply:        e.selector.Choose(localized(stressAnxietyReplies, t.locale), t.lastReply),
			CategorySlug: slugStress,
			Emoji:        e.emojiFor(ctx, slugStress),
		}
		return e.withIntervention(ctx, t, res)
	}

	if category == nil {
		if shouldShield(t.normalized, t.history) {
			return Result{Reply: shieldReply(t.locale, t.lastReply)}, nil
		}
		return Result{Reply: e.selector.Choose(localized(fallbackReplies, t.locale), t.lastReply)}, nil
	}

	if text := e.contextualOverride(t.history, category.Slug, t.locale, t.lastReply, t.now); text != "" {
		res := Result{Reply: text, CategorySlug: category.Slug, Emoji: category.Emoji}
		return e.withIntervention(ctx, t, res)
	}

	responses, err := e.content.ActiveResponses(ctx, category.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load responses: %w", err)
	}
	text := e.selector.Choose(responses, t.lastReply)
	if text == "" {
		// Content gap, not a failure: the category stays on the record.
		text = e.selector.Choose(localized(fallbackReplies, t.locale), t.lastReply)
	}
	res := Result{Reply: text, CategorySlug: category.Slug, Emoji: category.Emoji}
	return e.withIntervention(ctx, t, res)
}

// replyForCategory answers directly from a category's response pool,
// bypassing keyword scoring (shielding choice mapping).
func (e *Engine) replyForCategory(ctx context.Context, t turn, slug string) (Result, error) {
	categories, err := e.content.ActiveCategories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load categories: %w", err)
	}
	cat := categoryBySlug(categories, slug)
	if cat == nil {
		return Result{Reply: e.selector.Choose(localized(fallbackReplies, t.locale), t.lastReply)}, nil
	}
	responses, err := e.content.ActiveResponses(ctx, cat.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load responses: %w", err)
	}
	text := e.selector.Choose(responses, t.lastReply)
	if text == "" {
		text = e.selector.Choose(localized(fallbackReplies, t.locale), t.lastReply)
	}
	res := Result{Reply: text, CategorySlug: cat.Slug, Emoji: cat.Emoji}
	return e.withIntervention(ctx, t, res)
}

func (e *Engine) greet(ctx context.Context, t turn) (Result, error) {
	res := Result{
		Reply:        e.selector.Choose(localized(greetingReplies, t.locale), t.lastReply),
		CategorySlug: slugSocial,
		Emoji:        e.emojiFor(ctx, slugSocial),
	}
	return res, nil
}

func (e *Engine) withIntervention(ctx context.Context, t turn, res Result) (Result, error) {
	items, err := e.pickIntervention(ctx, t.userID, res.CategorySlug, t.locale)
	if err != nil {
		return Result{}, err
	}
	res.Interventions = items
	return res, nil
}

// emojiFor looks up a category's emoji, tolerating a missing row (forced
// categories like the short-direction stress override).
func (e *Engine) emojiFor(ctx context.Context, slug string) string {
	categories, err := e.content.ActiveCategories(ctx)
	if err != nil {
		return ""
	}
	if cat := categoryBySlug(categories, slug); cat != nil {
		return cat.Emoji
	}
	return ""
}

var greetingWords = []string{
	"oi", "ola", "eai", "hello", "hi", "hey",
	"bom dia", "boa tarde", "boa noite", "good morning", "good evening",
}

func isExplicitGreeting(normalized string) bool {
	words := textnorm.Words(normalized)
	return textnorm.ContainsAny(normalized, words, greetingWords)
}

func conciergeResult(out concierge.Outcome) Result {
	res := Result{Reply: out.Reply}
	if t := out.CreatedTask; t != nil {
		res.CreatedTask = &TaskRef{ID: t.ID, Title: t.Title, When: t.DueDate}
	}
	if e := out.CreatedEvent; e != nil {
		res.CreatedEvent = &TaskRef{ID: e.ID, Title: e.Title, EventType: e.EventType, When: e.StartAt}
	}
	if n := out.CreatedNotification; n != nil {
		res.CreatedNote = &NoteRef{ID: n.ID, Title: n.Title, Link: n.Link}
	}
	return res
}
