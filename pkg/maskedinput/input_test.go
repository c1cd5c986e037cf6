package maskedinput

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/goliatone/go-inputmask/pkg/mask"
	"github.com/goliatone/go-inputmask/pkg/pipe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustSpec(t *testing.T, pattern string) mask.Spec {
	t.Helper()
	spec, err := mask.FromPattern(pattern)
	if err != nil {
		t.Fatalf("pattern %q: %v", pattern, err)
	}
	return spec
}

func newInput(t *testing.T, cfg Config, opts ...Option) *Input {
	t.Helper()
	in, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = in.Close() })
	return in
}

func mustUpdate(t *testing.T, in *Input, raw string, caret int) Change {
	t.Helper()
	change, err := in.Update(raw, caret)
	if err != nil {
		t.Fatalf("Update(%q, %d): %v", raw, caret, err)
	}
	return change
}

func datedInput(t *testing.T, opts ...Option) *Input {
	return newInput(t, Config{
		Mask: mustSpec(t, "99-99-9999"),
		Pipe: pipe.NewAutoCorrectedDate("MM-DD-YYYY"),
	}, opts...)
}

func TestNew_RequiresMask(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrMissingMask) {
		t.Fatalf("expected ErrMissingMask, got %v", err)
	}
}

func TestUpdate_PipeShiftsDigit(t *testing.T) {
	in := datedInput(t)

	change := mustUpdate(t, in, "4", 1)
	if change.Value != "04-__-____" {
		t.Fatalf("unexpected value %q", change.Value)
	}
	if diff := cmp.Diff([]int{0}, change.PipedIndexes); diff != "" {
		t.Fatalf("piped indexes mismatch (-want +got):\n%s", diff)
	}
	if in.Value() != "04-__-____" {
		t.Fatalf("committed value %q", in.Value())
	}
	if in.State() != StateDisplayed {
		t.Fatalf("expected displayed state, got %s", in.State())
	}
}

func TestUpdate_PipeShiftsDigitWithoutGuide(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  string
		piped []int
	}{
		{name: "month", raw: "4", want: "04", piped: []int{0}},
		{name: "day", raw: "02-4", want: "02-04", piped: []int{3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guide := false
			in := newInput(t, Config{
				Mask:  mustSpec(t, "99-99-9999"),
				Pipe:  pipe.NewAutoCorrectedDate("MM-DD-YYYY"),
				Guide: &guide,
			})

			change := mustUpdate(t, in, tc.raw, -1)
			if change.Value != tc.want || in.Value() != tc.want {
				t.Fatalf("got %q / %q, want %q", change.Value, in.Value(), tc.want)
			}
			if diff := cmp.Diff(tc.piped, change.PipedIndexes); diff != "" {
				t.Fatalf("piped indexes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithPipe_RunsAfterConfigPipe(t *testing.T) {
	var seen []string
	record := pipe.Func(func(conformed string, _ pipe.Config) (pipe.Result, bool) {
		seen = append(seen, conformed)
		if strings.HasPrefix(conformed, "09") {
			return pipe.Reject()
		}
		return pipe.Accept(conformed)
	})
	in := datedInput(t, WithPipe(record))

	if change := mustUpdate(t, in, "4", 1); change.Value != "04-__-____" {
		t.Fatalf("unexpected value %q", change.Value)
	}
	change := mustUpdate(t, in, "09-__-____", 2)
	if !change.Rejected || in.Value() != "04-__-____" {
		t.Fatalf("expected the added pipe to reject, got %+v", change)
	}
	if diff := cmp.Diff([]string{"04-__-____", "09-__-____"}, seen); diff != "" {
		t.Fatalf("added pipe input mismatch (-want +got):\n%s", diff)
	}
}

func TestWithPipe_WithoutConfigPipe(t *testing.T) {
	upper := pipe.Func(func(conformed string, _ pipe.Config) (pipe.Result, bool) {
		return pipe.Result{Value: strings.ToUpper(conformed)}, true
	})
	in := newInput(t, Config{Mask: mustSpec(t, "aa-99")}, WithPipe(upper), WithPipe(nil))

	if change := mustUpdate(t, in, "ab12", -1); change.Value != "AB-12" {
		t.Fatalf("unexpected value %q", change.Value)
	}
}

func TestUpdate_RejectKeepsPrevious(t *testing.T) {
	in := datedInput(t)

	mustUpdate(t, in, "1", 1)
	if in.Value() != "1_-__-____" {
		t.Fatalf("unexpected value %q", in.Value())
	}

	change := mustUpdate(t, in, "13_-__-____", 2)
	if !change.Rejected {
		t.Fatalf("expected rejection, got %+v", change)
	}
	if change.Value != "1_-__-____" || in.Value() != "1_-__-____" {
		t.Fatalf("rejection must keep previous value, got %q / %q", change.Value, in.Value())
	}
}

func TestUpdate_CompleteDates(t *testing.T) {
	valid := datedInput(t)
	change := mustUpdate(t, valid, "02282024", -1)
	if change.Value != "02-28-2024" || !change.Complete {
		t.Fatalf("unexpected change %+v", change)
	}

	invalid := datedInput(t)
	change = mustUpdate(t, invalid, "02302024", -1)
	if !change.Rejected || invalid.Value() != "" {
		t.Fatalf("expected rejection of 02-30-2024, got %+v", change)
	}
}

func TestUpdate_Unchanged(t *testing.T) {
	in := newInput(t, Config{Mask: mustSpec(t, "99-99")})
	mustUpdate(t, in, "1", 1)

	change := mustUpdate(t, in, "1_-__", 1)
	if !change.Unchanged {
		t.Fatalf("expected unchanged, got %+v", change)
	}
}

func TestShowMask(t *testing.T) {
	cases := []struct {
		name     string
		showMask bool
		want     string
	}{
		{name: "hidden", showMask: false, want: ""},
		{name: "shown", showMask: true, want: "__-__"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := newInput(t, Config{Mask: mustSpec(t, "99-99"), ShowMask: tc.showMask})
			if in.Value() != tc.want {
				t.Fatalf("initial value %q, want %q", in.Value(), tc.want)
			}

			mustUpdate(t, in, "1", 1)
			if in.Value() != "1_-__" {
				t.Fatalf("unexpected value %q", in.Value())
			}

			change := mustUpdate(t, in, "_-__", 0)
			if change.Value != tc.want {
				t.Fatalf("cleared value %q, want %q", change.Value, tc.want)
			}
		})
	}
}

func TestDisabledMaskPassesThrough(t *testing.T) {
	in := newInput(t, Config{Mask: mask.Disabled()})
	change := mustUpdate(t, in, "anything goes", 3)
	if change.Value != "anything goes" || change.Caret != 3 {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestDynamicMask(t *testing.T) {
	zip := mask.MustParse("99999")
	zip4 := mask.MustParse("99999-9999")
	spec := mask.Dynamic(func(raw string, _ mask.SelectInfo) (mask.Rules, error) {
		digits := 0
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits > 5 {
			return zip4, nil
		}
		return zip, nil
	})

	in := newInput(t, Config{Mask: spec})
	change := mustUpdate(t, in, "123456", -1)
	if change.Value != "12345-6___" {
		t.Fatalf("unexpected value %q", change.Value)
	}
	if in.Placeholder() != "_____-____" {
		t.Fatalf("unexpected placeholder %q", in.Placeholder())
	}
}

func TestDynamicMask_InvalidSelection(t *testing.T) {
	spec := mask.Dynamic(func(raw string, _ mask.SelectInfo) (mask.Rules, error) {
		if strings.Contains(raw, "x") {
			return nil, nil
		}
		return mask.MustParse("999"), nil
	})

	in := newInput(t, Config{Mask: spec})
	mustUpdate(t, in, "1", 1)

	_, err := in.Update("1x", 2)
	if !errors.Is(err, mask.ErrInvalidMask) {
		t.Fatalf("expected ErrInvalidMask, got %v", err)
	}
	if in.Value() != "1__" {
		t.Fatalf("failed update must not change value, got %q", in.Value())
	}
}

func TestAllowReplacing(t *testing.T) {
	replacing := newInput(t, Config{Mask: mustSpec(t, "99-99"), Value: "12-34", AllowReplacing: true})
	if replacing.Value() != "12-34" {
		t.Fatalf("initial value %q", replacing.Value())
	}
	if change := mustUpdate(t, replacing, "152-34", 2); change.Value != "15-34" {
		t.Fatalf("replacing: got %q", change.Value)
	}

	shifting := newInput(t, Config{Mask: mustSpec(t, "99-99"), Value: "12-34"})
	if change := mustUpdate(t, shifting, "152-34", 2); change.Value != "15-23" {
		t.Fatalf("shifting: got %q", change.Value)
	}
}

func TestChangeListener_Synchronous(t *testing.T) {
	var got []string
	in := newInput(t, Config{Mask: mustSpec(t, "99-99")}, WithChangeListener(func(c Change) {
		got = append(got, c.Value)
	}))

	mustUpdate(t, in, "1", 1)
	mustUpdate(t, in, "1_-__", 1)
	mustUpdate(t, in, "12_-__", 2)

	if diff := cmp.Diff([]string{"1_-__", "12-__"}, got); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeListener_ReceivesEachCommit(t *testing.T) {
	var (
		mu  sync.Mutex
		got []Change
	)
	in := newInput(t, Config{Mask: mustSpec(t, "99-99")}, WithChangeListener(func(c Change) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	}))

	results := make(chan Change, 16)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := strings.Repeat(string(rune('0'+i%10)), i%4+1)
			change, err := in.Update(raw, -1)
			if err != nil {
				t.Errorf("Update: %v", err)
				return
			}
			if !change.Unchanged && !change.Rejected {
				results <- change
			}
		}(i)
	}
	wg.Wait()
	close(results)

	var want []Change
	for c := range results {
		want = append(want, c)
	}
	byValue := func(a, b Change) bool {
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Caret < b.Caret
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(byValue), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("notifications differ from returned changes (-want +got):\n%s", diff)
	}
}

func TestChangeListener_Debounced(t *testing.T) {
	got := make(chan Change, 4)
	in := datedInput(t,
		WithDebounce(30*time.Millisecond),
		WithChangeListener(func(c Change) { got <- c }),
	)

	mustUpdate(t, in, "1", 1)
	mustUpdate(t, in, "12_-__-____", 2)

	select {
	case c := <-got:
		if c.Value != "12-__-____" {
			t.Fatalf("expected latest value, got %q", c.Value)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced listener never fired")
	}

	select {
	case c := <-got:
		t.Fatalf("expected a single notification, got extra %+v", c)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClose_CancelsPendingNotification(t *testing.T) {
	fired := make(chan struct{}, 1)
	in, err := New(Config{Mask: mustSpec(t, "99")},
		WithDebounce(time.Hour),
		WithChangeListener(func(Change) { fired <- struct{}{} }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mustUpdate(t, in, "1", 1)
	if err := in.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := in.Update("12", 2); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	select {
	case <-fired:
		t.Fatal("listener fired after Close")
	default:
	}
}

func TestReset(t *testing.T) {
	in := newInput(t, Config{Mask: mustSpec(t, "99-99"), ShowMask: true})
	mustUpdate(t, in, "12", 2)

	change, err := in.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if change.Value != "__-__" || in.Value() != "__-__" {
		t.Fatalf("unexpected reset value %q", change.Value)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	in := newInput(t, Config{Mask: mustSpec(t, "99-99")})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := strings.Repeat(string(rune('0'+i)), i%4+1)
			if _, err := in.Update(raw, -1); err != nil {
				t.Errorf("Update: %v", err)
			}
			_ = in.Value()
		}(i)
	}
	wg.Wait()

	if n := utf8.RuneCountInString(in.Value()); n != 0 && n != 5 {
		t.Fatalf("value %q breaks the length invariant", in.Value())
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestSafeRawValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "abc", want: "abc"},
		{in: 42, want: "42"},
		{in: int64(-7), want: "-7"},
		{in: uint8(9), want: "9"},
		{in: 3.5, want: "3.5"},
		{in: label("x"), want: "label:x"},
	}
	for _, tc := range cases {
		got, err := SafeRawValue(tc.in)
		if err != nil {
			t.Fatalf("SafeRawValue(%v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SafeRawValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := SafeRawValue(struct{}{}); !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
}
