package conform

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/goliatone/go-inputmask/pkg/mask"
)

var dashed = mask.MustParse("99-99")

func mustConform(t *testing.T, raw string, rules mask.Rules, cfg Config) Result {
	t.Helper()
	res, err := Conform(raw, rules, cfg)
	if err != nil {
		t.Fatalf("conform %q: %v", raw, err)
	}
	return res
}

func TestConform_Edits(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		cfg       Config
		wantValue string
		wantCaret int
	}{
		{
			name:      "first digit",
			raw:       "1",
			cfg:       Config{CaretPosition: 1},
			wantValue: "1_-__",
			wantCaret: 1,
		},
		{
			name:      "second digit jumps literal",
			raw:       "12_-__",
			cfg:       Config{Previous: "1_-__", CaretPosition: 2},
			wantValue: "12-__",
			wantCaret: 3,
		},
		{
			name:      "rejected letter keeps caret",
			raw:       "1x_-__",
			cfg:       Config{Previous: "1_-__", CaretPosition: 2},
			wantValue: "1_-__",
			wantCaret: 1,
		},
		{
			name:      "deleting digit moves caret before literal",
			raw:       "12-4",
			cfg:       Config{Previous: "12-34", CaretPosition: 3},
			wantValue: "12-4_",
			wantCaret: 2,
		},
		{
			name:      "deleting literal deletes preceding digit",
			raw:       "123_",
			cfg:       Config{Previous: "12-3_", CaretPosition: 2},
			wantValue: "13-__",
			wantCaret: 1,
		},
		{
			name:      "overflow truncated",
			raw:       "123456",
			cfg:       Config{CaretPosition: 6},
			wantValue: "12-34",
			wantCaret: 5,
		},
		{
			name:      "empty input",
			raw:       "",
			cfg:       Config{Previous: "12-34", CaretPosition: 0},
			wantValue: "__-__",
			wantCaret: 0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := mustConform(t, tc.raw, dashed, tc.cfg)
			if res.Value != tc.wantValue {
				t.Fatalf("value: want %q, got %q", tc.wantValue, res.Value)
			}
			if res.CaretPosition != tc.wantCaret {
				t.Fatalf("caret: want %d, got %d", tc.wantCaret, res.CaretPosition)
			}
		})
	}
}

func TestConform_DropsInvalidCharacters(t *testing.T) {
	res := mustConform(t, "a1b2c3", dashed, Config{CaretPosition: -1})
	if res.Value != "12-3_" {
		t.Fatalf("want %q, got %q", "12-3_", res.Value)
	}
	if !res.SomeCharsRejected {
		t.Fatalf("expected rejected characters to be reported")
	}
}

func TestConform_NoGuide(t *testing.T) {
	added := mustConform(t, "12", dashed, Config{NoGuide: true, CaretPosition: 2})
	if added.Value != "12-" {
		t.Fatalf("addition: want %q, got %q", "12-", added.Value)
	}

	deleted := mustConform(t, "12-", dashed, Config{NoGuide: true, Previous: "12-3", CaretPosition: 3})
	if deleted.Value != "12" {
		t.Fatalf("deletion: want %q, got %q", "12", deleted.Value)
	}

	empty := mustConform(t, "", dashed, Config{NoGuide: true, Previous: "1"})
	if empty.Value != "" {
		t.Fatalf("empty: want empty value, got %q", empty.Value)
	}
}

func TestConform_KeepCharPositions(t *testing.T) {
	deleted := mustConform(t, "1-34", dashed, Config{Previous: "12-34", CaretPosition: 1, KeepCharPositions: true})
	if deleted.Value != "1_-34" {
		t.Fatalf("deletion: want %q, got %q", "1_-34", deleted.Value)
	}

	inserted := mustConform(t, "15_-34", dashed, Config{Previous: "1_-34", CaretPosition: 2, KeepCharPositions: true})
	if inserted.Value != "15-34" {
		t.Fatalf("insertion: want %q, got %q", "15-34", inserted.Value)
	}

	shifted := mustConform(t, "15_-34", dashed, Config{Previous: "1_-34", CaretPosition: 2})
	if shifted.Value != "15-_3" {
		t.Fatalf("insertion without keep: want %q, got %q", "15-_3", shifted.Value)
	}

	literal := mustConform(t, "123_", dashed, Config{Previous: "12-3_", CaretPosition: 2, KeepCharPositions: true})
	if literal.Value != "1_-3_" {
		t.Fatalf("literal deletion: want %q, got %q", "1_-3_", literal.Value)
	}
}

func TestConform_PlaceholderCollision(t *testing.T) {
	_, err := Conform("1", mask.MustParse("9_9"), Config{})
	if !errors.Is(err, mask.ErrPlaceholderCollision) {
		t.Fatalf("expected collision, got %v", err)
	}
}

func TestConform_CustomPlaceholderChar(t *testing.T) {
	res := mustConform(t, "1", mask.MustParse("(999)"), Config{PlaceholderChar: ' ', CaretPosition: 1})
	if res.Value != "(1  )" {
		t.Fatalf("want %q, got %q", "(1  )", res.Value)
	}
	if res.Placeholder != "(   )" {
		t.Fatalf("placeholder: want %q, got %q", "(   )", res.Placeholder)
	}
}

const fuzzAlphabet = "0123456789abcXYZ-_/ ()"

func randomInput(rng *rand.Rand) string {
	n := rng.Intn(20)
	out := make([]byte, n)
	for i := range out {
		out[i] = fuzzAlphabet[rng.Intn(len(fuzzAlphabet))]
	}
	return string(out)
}

func TestConform_Invariants(t *testing.T) {
	masks := []mask.Rules{
		dashed,
		mask.MustParse("(999) 999-9999"),
		mask.MustParse("aa-9999"),
		mask.MustParse("99/99/9999"),
	}
	rng := rand.New(rand.NewSource(7))

	for _, rules := range masks {
		for i := 0; i < 300; i++ {
			raw := randomInput(rng)
			previous := ""
			if rng.Intn(2) == 0 {
				previous = mustConform(t, randomInput(rng), rules, Config{CaretPosition: -1}).Value
			}
			res := mustConform(t, raw, rules, Config{Previous: previous, CaretPosition: rng.Intn(len(raw) + 1)})

			if got, want := len([]rune(res.Value)), len(rules); got != want {
				t.Fatalf("length invariant broken for %q on %s: want %d, got %d (%q)", raw, rules, want, got, res.Value)
			}
			for idx, rule := range rules {
				if rule.IsLiteral() && []rune(res.Value)[idx] != rule.Rune() {
					t.Fatalf("literal at %d not preserved for %q: %q", idx, raw, res.Value)
				}
			}
			if res.CaretPosition < 0 || res.CaretPosition > len([]rune(res.Value)) {
				t.Fatalf("caret %d out of bounds for %q", res.CaretPosition, res.Value)
			}

			again := mustConform(t, res.Value, rules, Config{Previous: res.Value, CaretPosition: -1})
			if again.Value != res.Value {
				t.Fatalf("conform not idempotent on %s: %q -> %q", rules, res.Value, again.Value)
			}
			fresh := mustConform(t, res.Value, rules, Config{CaretPosition: -1})
			if fresh.Value != res.Value {
				t.Fatalf("conform of conformed value changed it on %s: %q -> %q", rules, res.Value, fresh.Value)
			}
		}
	}
}
