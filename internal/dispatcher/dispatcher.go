// Package dispatcher maps chat triggers to day record transitions. Each call
// loads the record for (user, today), applies one transition, persists the
// record when it changed and returns the text to show.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fichaje/internal/domain"
	appErrors "fichaje/internal/errors"
	"fichaje/internal/logging"
	"fichaje/internal/repository"
	"fichaje/internal/timeutil"
	"fichaje/internal/validation"
	"fichaje/internal/workday"
)

// Response is the reply for one trigger
type Response struct {
	Text string
	// Changed is true when the record was written back to the store
	Changed bool
}

// Dispatcher handles button actions and manual edits for one user at a time
type Dispatcher interface {
	Handle(ctx context.Context, userID string, action Action) (Response, error)
	Edit(ctx context.Context, userID string, field EditField, args []string) (Response, error)
}

// Options tunes a dispatcher. Zero values fall back to the clock's location,
// no deadline and a discarding logger.
type Options struct {
	Location *time.Location
	Timeout  time.Duration
	Logger   *slog.Logger
}

// dispatcherImpl implements the Dispatcher interface
type dispatcherImpl struct {
	store      repository.Store
	mapper     *domain.DayRecordMapper
	calculator *workday.Calculator
	clock      timeutil.Clock
	validator  *validation.Validator
	locks      *keyLock
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a dispatcher over store
func New(store repository.Store, calculator *workday.Calculator, clock timeutil.Clock, opts Options) Dispatcher {
	loc := opts.Location
	if loc == nil {
		loc = clock.Now().Location()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &dispatcherImpl{
		store:      store,
		mapper:     domain.NewDayRecordMapper(loc),
		calculator: calculator,
		clock:      clock,
		validator:  validation.NewValidator(),
		locks:      newKeyLock(),
		timeout:    opts.Timeout,
		logger:     logger,
	}
}

// mutation applies one transition to record and returns the reply text
type mutation func(record *domain.DayRecord, now time.Time) string

// Handle applies a button action to today's record
func (d *dispatcherImpl) Handle(ctx context.Context, userID string, action Action) (Response, error) {
	var apply mutation
	switch action {
	case ActionStartDay:
		apply = d.startDay
	case ActionPause:
		apply = d.pause
	case ActionResume:
		apply = d.resume
	case ActionEndDay:
		apply = d.endDay
	case ActionSummary:
		apply = d.summary(false)
	case ActionBalance:
		apply = d.summary(true)
	default:
		return Response{Text: UnknownActionText}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return d.run(ctx, userID, action.String(), apply)
}

// Edit overwrites one field of today's record with a time of day. Invalid
// arguments are reported in the response and leave the record untouched.
func (d *dispatcherImpl) Edit(ctx context.Context, userID string, field EditField, args []string) (Response, error) {
	var (
		edit validation.ClockEdit
		err  error
	)
	switch field {
	case EditStart, EditEnd:
		edit, err = d.validator.ValidateDayEdit(field.Usage(), args)
	case EditPauseStart, EditPauseEnd:
		edit, err = d.validator.ValidatePauseEdit(field.Usage(), args)
	default:
		return Response{Text: UnknownActionText}, fmt.Errorf("%w: %s", ErrUnknownAction, field)
	}
	if err != nil {
		return d.rejected(userID, field, err), nil
	}

	var rejection error
	resp, runErr := d.run(ctx, userID, field.String(), func(record *domain.DayRecord, now time.Time) string {
		if field.IsPause() {
			if err := d.validator.ValidatePauseIndex(edit.PauseIndex, len(record.Pauses)); err != nil {
				rejection = err
				return ""
			}
		}
		at := timeutil.OnDay(now, edit.Hour, edit.Minute)
		switch field {
		case EditStart:
			record.Start = &at
		case EditEnd:
			record.End = &at
		case EditPauseStart:
			record.Pauses[edit.PauseIndex].Start = at
		case EditPauseEnd:
			record.Pauses[edit.PauseIndex].End = &at
		}
		summary, err := d.calculator.Summarize(*record, false)
		return EditAppliedText + "\n\n" + summaryText(summary, err)
	})
	if rejection != nil {
		return d.rejected(userID, field, rejection), nil
	}
	return resp, runErr
}

func (d *dispatcherImpl) rejected(userID string, field EditField, err error) Response {
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		return Response{Text: appErrors.GetUserMessage(err)}
	}
	d.logger.Debug("edit rejected", "user_id", userID, "action", field.String(), "error", err)
	return Response{Text: ve.GetUserFriendlyMessage()}
}

// run loads today's record under the key lock, applies m and persists the
// record only when m changed it.
func (d *dispatcherImpl) run(ctx context.Context, userID, name string, m mutation) (Response, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	now := d.clock.Now()
	key := repository.NewKey(userID, timeutil.DateKey(now))
	if err := key.Validate(); err != nil {
		return Response{Text: appErrors.GetUserMessage(err)}, err
	}

	unlock := d.locks.Lock(key.String())
	defer unlock()

	logger := d.logger.With("user_id", userID, "date", key.Date, "action", name)

	record, err := d.load(ctx, key)
	if err != nil {
		if appErrors.IsErrorType(err, appErrors.ErrorTypeCorruptRecord) {
			logger.Warn("stored record is unreadable", appendError(err)...)
			return Response{Text: workday.InsufficientDataText}, nil
		}
		logger.Error("failed to load day record", appendError(err)...)
		return Response{Text: appErrors.GetUserMessage(err)}, err
	}

	before := record.Clone()
	text := m(&record, now)

	if record.Equal(before) {
		logger.Debug("interaction handled", "changed", false)
		return Response{Text: text}, nil
	}

	if err := d.store.Put(ctx, key, d.mapper.ToDocument(record)); err != nil {
		err = appErrors.FromContext(ctx, "put day record", err)
		logger.Error("failed to save day record", appendError(err)...)
		return Response{Text: appErrors.GetUserMessage(err)}, err
	}

	logger.Info("interaction handled", "changed", true, "pauses", len(record.Pauses))
	return Response{Text: text, Changed: true}, nil
}

// load returns the stored record, or an empty one when nothing is stored
func (d *dispatcherImpl) load(ctx context.Context, key repository.Key) (domain.DayRecord, error) {
	doc, err := d.store.Get(ctx, key)
	if err != nil {
		if appErrors.IsErrorType(err, appErrors.ErrorTypeNotFound) {
			return domain.NewDayRecord(), nil
		}
		return domain.DayRecord{}, appErrors.FromContext(ctx, "get day record", err)
	}
	return d.mapper.FromDocument(doc)
}

func (d *dispatcherImpl) startDay(record *domain.DayRecord, now time.Time) string {
	if record.HasStarted() {
		exit := d.calculator.EstimateExit(*record.Start, record.Pauses, false)
		return workday.RenderAlreadyStarted(*record.Start, exit)
	}
	record.StartDay(now)
	return workday.RenderStarted(now, d.calculator.EstimateExit(now, nil, true))
}

func (d *dispatcherImpl) pause(record *domain.DayRecord, now time.Time) string {
	if !record.BeginPause(now) {
		return AlreadyPausedText
	}
	return PauseStartedText
}

func (d *dispatcherImpl) resume(record *domain.DayRecord, now time.Time) string {
	if !record.EndPause(now) {
		return NoActivePauseText
	}
	return PauseEndedText
}

func (d *dispatcherImpl) endDay(record *domain.DayRecord, now time.Time) string {
	record.EndDay(now)

	summary, err := d.calculator.Summarize(*record, true)
	if err != nil {
		return DayEndedText + "\n\n" + workday.InsufficientDataText
	}
	balance := *summary.Balance
	summary.Balance = nil
	return DayEndedText + "\n\n" + workday.RenderSummary(summary) + "\n\n" + workday.RenderBalanceLine(balance)
}

func (d *dispatcherImpl) summary(includeBalance bool) mutation {
	return func(record *domain.DayRecord, _ time.Time) string {
		summary, err := d.calculator.Summarize(*record, includeBalance)
		return summaryText(summary, err)
	}
}

func summaryText(summary workday.Summary, err error) string {
	if err != nil {
		return workday.InsufficientDataText
	}
	return workday.RenderSummary(summary)
}

func appendError(err error) []any {
	attrs := []any{"error", err}
	if appErr, ok := appErrors.AsAppError(err); ok {
		attrs = append(attrs, appErr.LogAttrs()...)
	}
	return attrs
}
