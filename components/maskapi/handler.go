package maskapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/maskedinput"
	"github.com/goliatone/go-inputmask/pkg/presets"
)

const customPresetLabel = "custom"

type conformRequest struct {
	Preset            string              `json:"preset"`
	Pattern           string              `json:"pattern"`
	Pipe              *presets.PipeConfig `json:"pipe"`
	Value             string              `json:"value"`
	Previous          string              `json:"previous"`
	Caret             *int                `json:"caret"`
	Guide             *bool               `json:"guide"`
	KeepCharPositions *bool               `json:"keepCharPositions"`
	PlaceholderChar   string              `json:"placeholderChar"`
}

type conformResponse struct {
	Value        string `json:"value"`
	Caret        int    `json:"caret"`
	Placeholder  string `json:"placeholder"`
	PipedIndexes []int  `json:"pipedIndexes"`
	Rejected     bool   `json:"rejected"`
	Complete     bool   `json:"complete"`
}

type presetView struct {
	presets.Preset
	Placeholder string `json:"placeholder"`
}

type presetsResponse struct {
	Data []presetView `json:"data"`
}

// Handler builds a net/http handler serving both routes relative to the
// route path.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := newHandlers(opts)
	mux := http.NewServeMux()
	mux.Handle(mountPath("", opts.RoutePath)+"/conform", h.conform())
	mux.Handle(mountPath("", opts.RoutePath)+"/presets", h.list())
	return mux
}

// ConformHandler serves POST conform requests.
func ConformHandler(fns ...OptionFn) http.Handler {
	return newHandlers(NewOptions(fns...)).conform()
}

// PresetsHandler serves GET and HEAD preset listings.
func PresetsHandler(fns ...OptionFn) http.Handler {
	return newHandlers(NewOptions(fns...)).list()
}

type handlers struct {
	opts    Options
	metrics *metrics
}

func newHandlers(opts Options) *handlers {
	return &handlers{opts: opts, metrics: newMetrics(opts.Registerer)}
}

func (h *handlers) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.opts.Guard == nil {
		return true
	}
	if err := h.opts.Guard(r); err != nil {
		writeGuardError(w, err)
		return false
	}
	return true
}

func (h *handlers) conform() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if !h.guard(w, r) {
			return
		}

		var req conformRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("maskapi: decode request: %w", err)})
			return
		}

		preset, label, err := h.preset(req)
		if err != nil {
			writeError(w, err)
			return
		}

		start := time.Now()
		change, err := run(preset, req)
		elapsed := time.Since(start)
		if err != nil {
			h.metrics.observe(label, OutcomeError, elapsed)
			h.opts.Logger.Warn("conform failed", zap.String("preset", label), zap.Error(err))
			writeError(w, err)
			return
		}

		outcome := outcomeOf(change)
		h.metrics.observe(label, outcome, elapsed)
		h.opts.Logger.Debug("conformed edit",
			zap.String("preset", label),
			zap.String("outcome", outcome),
			zap.Int("caret", change.Caret),
			zap.Duration("elapsed", elapsed),
		)

		indexes := change.PipedIndexes
		if indexes == nil {
			indexes = []int{}
		}
		writeJSON(w, http.StatusOK, conformResponse{
			Value:        change.Value,
			Caret:        change.Caret,
			Placeholder:  change.Placeholder,
			PipedIndexes: indexes,
			Rejected:     change.Rejected,
			Complete:     change.Complete,
		})
	})
}

func (h *handlers) preset(req conformRequest) (presets.Preset, string, error) {
	var (
		p     presets.Preset
		label string
	)
	switch {
	case req.Preset != "":
		found, ok := h.opts.Presets.Lookup(req.Preset)
		if !ok {
			return p, "", StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("%w: %q", presets.ErrUnknownPreset, req.Preset)}
		}
		p, label = found, found.Name
		if req.Pipe != nil {
			p.Pipe = req.Pipe
		}
	case req.Pattern != "":
		p = presets.Preset{Name: customPresetLabel, Pattern: req.Pattern, Pipe: req.Pipe}
		label = customPresetLabel
	default:
		return p, "", StatusError{Code: http.StatusBadRequest, Err: errors.New("maskapi: preset or pattern is required")}
	}

	if req.Guide != nil {
		guide := *req.Guide
		p.Guide = &guide
	}
	if req.KeepCharPositions != nil {
		p.KeepCharPositions = *req.KeepCharPositions
	}
	if req.PlaceholderChar != "" {
		if utf8.RuneCountInString(req.PlaceholderChar) != 1 {
			return p, "", StatusError{Code: http.StatusBadRequest, Err: errors.New("maskapi: placeholderChar must be one character")}
		}
		p.PlaceholderChar = req.PlaceholderChar
	}
	if err := p.Validate(); err != nil {
		return p, "", StatusError{Code: http.StatusUnprocessableEntity, Err: err}
	}
	return p, label, nil
}

// run replays one edit on a fresh input seeded with the previous value.
func run(p presets.Preset, req conformRequest) (maskedinput.Change, error) {
	cfg, err := p.Config()
	if err != nil {
		return maskedinput.Change{}, StatusError{Code: http.StatusUnprocessableEntity, Err: err}
	}
	cfg.Value = req.Previous
	in, err := maskedinput.New(cfg)
	if err != nil {
		return maskedinput.Change{}, StatusError{Code: http.StatusUnprocessableEntity, Err: err}
	}
	defer func() { _ = in.Close() }()

	caret := -1
	if req.Caret != nil {
		caret = *req.Caret
	}
	return in.Update(req.Value, caret)
}

func outcomeOf(change maskedinput.Change) string {
	switch {
	case change.Rejected:
		return OutcomeRejected
	case change.Unchanged:
		return OutcomeUnchanged
	case change.Complete:
		return OutcomeComplete
	default:
		return OutcomeAccepted
	}
}

func (h *handlers) list() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if !h.guard(w, r) {
			return
		}

		all := h.opts.Presets.Presets()
		views := make([]presetView, 0, len(all))
		for _, p := range all {
			placeholder, err := p.Placeholder()
			if err != nil {
				h.opts.Logger.Warn("skipping preset", zap.String("preset", p.Name), zap.Error(err))
				continue
			}
			views = append(views, presetView{Preset: p, Placeholder: placeholder})
		}

		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(w, http.StatusOK, presetsResponse{Data: views})
	})
}
