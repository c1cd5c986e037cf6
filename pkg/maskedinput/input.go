package maskedinput

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/conform"
	"github.com/goliatone/go-inputmask/pkg/mask"
	"github.com/goliatone/go-inputmask/pkg/pipe"
)

// Config describes a masked field.
type Config struct {
	// Mask is required. mask.Disabled() passes input through untouched.
	Mask mask.Spec
	// Pipe post-processes every conformed value. Optional.
	Pipe pipe.Pipe
	// Guide shows placeholder characters for unfilled positions. Defaults to
	// true when nil.
	Guide *bool
	// PlaceholderChar defaults to mask.DefaultPlaceholderChar.
	PlaceholderChar rune
	// KeepCharPositions makes insertions overwrite placeholders and deletions
	// leave placeholders behind.
	KeepCharPositions bool
	// ShowMask displays the placeholder instead of an empty value.
	ShowMask bool
	// AllowReplacing lets typing into a filled value overwrite the rune at
	// the caret.
	AllowReplacing bool
	// Value is the initial raw value.
	Value string
}

// Input holds the committed display value of one field and turns raw edits
// into new display values. It is safe for concurrent use.
type Input struct {
	mu sync.Mutex

	spec           mask.Spec
	pipe           pipe.Pipe
	guide          bool
	ch             rune
	keepPositions  bool
	showMask       bool
	allowReplacing bool

	logger   *zap.Logger
	listener ChangeListener
	debounce time.Duration
	timer    *time.Timer

	value       string
	placeholder string
	last        Change
	state       State
	closed      bool
}

// New validates cfg and conforms cfg.Value as the initial display value.
func New(cfg Config, opts ...Option) (*Input, error) {
	if cfg.Mask.IsZero() {
		return nil, ErrMissingMask
	}

	in := &Input{
		spec:           cfg.Mask,
		pipe:           cfg.Pipe,
		guide:          true,
		ch:             mask.DefaultPlaceholderChar,
		keepPositions:  cfg.KeepCharPositions,
		showMask:       cfg.ShowMask,
		allowReplacing: cfg.AllowReplacing,
		logger:         zap.NewNop(),
	}
	if cfg.Guide != nil {
		in.guide = *cfg.Guide
	}
	if cfg.PlaceholderChar != 0 {
		in.ch = cfg.PlaceholderChar
	}
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if _, err := in.apply(cfg.Value, -1, true); err != nil {
		return nil, err
	}
	return in, nil
}

// Update processes raw, the full field content after an edit, with the caret
// at caret (negative means the end). Rejections are reported through
// Change.Rejected; errors are reserved for misbehaving masks.
func (in *Input) Update(raw string, caret int) (Change, error) {
	in.mu.Lock()
	change, err := in.apply(raw, caret, false)
	in.mu.Unlock()
	if err != nil {
		return change, err
	}
	if !change.Unchanged && !change.Rejected {
		in.dispatch(change)
	}
	return change, nil
}

// Reset clears the field as if the user had deleted everything.
func (in *Input) Reset() (Change, error) {
	in.mu.Lock()
	change, err := in.apply("", 0, true)
	in.mu.Unlock()
	if err != nil {
		return change, err
	}
	in.dispatch(change)
	return change, nil
}

// Value returns the committed display value.
func (in *Input) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

// Placeholder returns the placeholder of the most recently resolved mask.
func (in *Input) Placeholder() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.placeholder
}

// State reports whether an edit is in flight.
func (in *Input) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Close cancels any pending debounced notification. Further updates fail
// with ErrClosed.
func (in *Input) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	return nil
}

func (in *Input) apply(raw string, caret int, force bool) (Change, error) {
	if in.closed {
		return Change{Value: in.value}, ErrClosed
	}
	rawLen := utf8.RuneCountInString(raw)
	if caret < 0 || caret > rawLen {
		caret = rawLen
	}
	if !force && raw == in.value {
		return Change{Value: in.value, Caret: caret, Placeholder: in.placeholder, Unchanged: true}, nil
	}

	in.state = StatePending
	defer func() { in.state = StateDisplayed }()

	if in.spec.IsDisabled() {
		return in.commit(Change{Value: raw, Caret: caret}), nil
	}

	resolved, err := mask.Resolve(in.spec, raw, mask.SelectInfo{
		CaretPosition:   caret,
		Previous:        in.value,
		PlaceholderChar: in.ch,
	})
	if err != nil {
		in.logger.Warn("mask resolution failed", zap.String("raw", raw), zap.Error(err))
		return Change{Value: in.value}, fmt.Errorf("maskedinput: %w", err)
	}
	if resolved.Disabled {
		return in.commit(Change{Value: raw, Caret: caret}), nil
	}

	placeholder, err := resolved.Placeholder(in.ch)
	if err != nil {
		return Change{Value: in.value}, fmt.Errorf("maskedinput: %w", err)
	}
	previousPlaceholder := in.placeholder
	if previousPlaceholder == "" {
		previousPlaceholder = placeholder
	}

	if in.allowReplacing && in.guide {
		raw = replaceAtCaret(raw, in.value, placeholder, caret, in.ch)
		caret = min(caret, utf8.RuneCountInString(raw))
	}

	res, err := conform.Conform(raw, resolved.Rules, conform.Config{
		Previous:            in.value,
		PreviousPlaceholder: previousPlaceholder,
		Placeholder:         placeholder,
		PlaceholderChar:     in.ch,
		NoGuide:             !in.guide,
		KeepCharPositions:   in.keepPositions,
		CaretPosition:       caret,
		CaretTrapIndexes:    resolved.CaretTrapIndexes,
	})
	if err != nil {
		return Change{Value: in.value}, fmt.Errorf("maskedinput: %w", err)
	}

	value := res.Value
	caretPos := res.CaretPosition
	rejected := false
	var piped []int

	if in.pipe != nil {
		out, ok := in.pipe.Pipe(value, pipe.Config{
			PlaceholderChar:   in.ch,
			KeepCharPositions: in.keepPositions,
			Guide:             in.guide,
			RawValue:          raw,
			Previous:          in.value,
			CaretPosition:     caret,
		})
		if ok {
			value = out.Value
			piped = out.IndexesOfPipedChars
		} else {
			value = in.value
			rejected = true
		}
		caretPos = conform.AdjustCaret(conform.CaretInput{
			Previous:            in.value,
			PreviousPlaceholder: previousPlaceholder,
			Conformed:           value,
			Raw:                 res.Raw,
			Placeholder:         placeholder,
			PlaceholderChar:     in.ch,
			CaretPosition:       res.RawCaret,
			IndexesOfPipedChars: piped,
			CaretTrapIndexes:    resolved.CaretTrapIndexes,
		})
	}

	if rejected {
		in.logger.Debug("edit rejected by pipe", zap.String("raw", raw), zap.String("kept", in.value))
		return Change{
			Value:       in.value,
			Caret:       min(caretPos, utf8.RuneCountInString(in.value)),
			Placeholder: placeholder,
			Rejected:    true,
			Complete:    isComplete(in.value, placeholder, in.ch),
		}, nil
	}

	if value == placeholder && caretPos == 0 {
		value = ""
		if in.showMask {
			value = placeholder
		}
	}

	in.placeholder = placeholder
	return in.commit(Change{
		Value:        value,
		Caret:        min(caretPos, utf8.RuneCountInString(value)),
		Placeholder:  placeholder,
		PipedIndexes: piped,
		Complete:     isComplete(value, placeholder, in.ch),
	}), nil
}

func (in *Input) commit(change Change) Change {
	in.value = change.Value
	in.last = change
	return change
}

// dispatch notifies the listener of change, the result of the edit that was
// just committed. Debounced notifications report the latest commit instead.
func (in *Input) dispatch(change Change) {
	if in.listener == nil {
		return
	}
	if in.debounce <= 0 {
		in.listener(change)
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	if in.timer != nil {
		in.timer.Stop()
	}
	in.timer = time.AfterFunc(in.debounce, in.fire)
}

func (in *Input) fire() {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return
	}
	in.timer = nil
	change := in.last
	in.mu.Unlock()
	in.listener(change)
}

func isComplete(value, placeholder string, ch rune) bool {
	if value == "" || placeholder == "" {
		return false
	}
	return utf8.RuneCountInString(value) == utf8.RuneCountInString(placeholder) &&
		!strings.ContainsRune(value, ch)
}
