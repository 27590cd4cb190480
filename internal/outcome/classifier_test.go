package outcome

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name    string
		attempt Attempt
		want    Outcome
	}{
		{"fast correct", Attempt{Correct: true, Duration: 5 * time.Second}, Perfect},
		{"correct at threshold", Attempt{Correct: true, Duration: 15 * time.Second}, Perfect},
		{"slow correct", Attempt{Correct: true, Duration: 20 * time.Second}, SlowSuccess},
		{"correct after retry", Attempt{Correct: true, Duration: time.Second, Retries: 1}, SuccessWithHint},
		{"slow correct after retry", Attempt{Correct: true, Duration: time.Minute, Retries: 2}, SuccessWithHint},
		{"wrong with retries left", Attempt{Correct: false, Duration: time.Second}, SuccessWithHint},
		{"wrong at retry limit", Attempt{Correct: false, Duration: time.Second, Retries: 1}, Failure},
		{"wrong past retry limit", Attempt{Correct: false, Retries: 4}, Failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.attempt); got != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestClassify_CustomThreshold(t *testing.T) {
	c := NewClassifier(Config{PerfectTime: 2 * time.Second, MaxRetriesAllowed: 3, TiltFailureLimit: 3})

	if got := c.Classify(Attempt{Correct: true, Duration: 3 * time.Second}); got != SlowSuccess {
		t.Errorf("got %q, want %q", got, SlowSuccess)
	}
	if got := c.Classify(Attempt{Correct: false, Retries: 2}); got != SuccessWithHint {
		t.Errorf("got %q, want %q", got, SuccessWithHint)
	}
	if got := c.Classify(Attempt{Correct: false, Retries: 3}); got != Failure {
		t.Errorf("got %q, want %q", got, Failure)
	}
}

func TestAbandon(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	if got := c.Abandon(); got != Abandoned {
		t.Errorf("Abandon() = %q, want %q", got, Abandoned)
	}
}

func TestShouldLockTheme(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name   string
		recent []Outcome
		want   bool
	}{
		{"empty", nil, false},
		{"too short", []Outcome{Failure, Failure}, false},
		{"three failures", []Outcome{Failure, Failure, Failure}, true},
		{"tail run after success", []Outcome{Perfect, Failure, Failure, Failure}, true},
		{"success at tail", []Outcome{Failure, Failure, Perfect}, false},
		{"broken run", []Outcome{Failure, Perfect, Failure, Failure}, false},
		{"abandon breaks run", []Outcome{Failure, Abandoned, Failure}, false},
		{"hint breaks run", []Outcome{Failure, Failure, SuccessWithHint}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ShouldLockTheme(tt.recent); got != tt.want {
				t.Errorf("ShouldLockTheme(%v) = %v, want %v", tt.recent, got, tt.want)
			}
		})
	}
}

func TestShouldLockTheme_DisabledLimit(t *testing.T) {
	c := NewClassifier(Config{TiltFailureLimit: 0})
	if c.ShouldLockTheme([]Outcome{Failure, Failure, Failure}) {
		t.Error("expected no lock with a zero limit")
	}
}

func TestOutcome_Valid(t *testing.T) {
	for _, o := range All() {
		if !o.Valid() {
			t.Errorf("%q should be valid", o)
		}
	}
	if Outcome("bogus").Valid() {
		t.Error("unknown outcome should be invalid")
	}
}

func TestOutcome_IsSuccess(t *testing.T) {
	want := map[Outcome]bool{
		Perfect:         true,
		SlowSuccess:     true,
		SuccessWithHint: true,
		Failure:         false,
		Abandoned:       false,
	}
	for o, w := range want {
		if got := o.IsSuccess(); got != w {
			t.Errorf("%q.IsSuccess() = %v, want %v", o, got, w)
		}
	}
}
