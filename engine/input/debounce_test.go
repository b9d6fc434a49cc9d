package input

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/lighthouse/common"
)

func TestDebouncerFirstPressEmits(t *testing.T) {
	d := NewDebouncer(DefaultCooldown)
	t0 := time.Unix(100, 0)

	got := d.Filter(t0, []common.MouseButton{common.MouseLeft})
	if len(got) != 1 || got[0] != common.MouseLeft {
		t.Fatalf("expected [MouseLeft], got %v", got)
	}
	if d.State(common.MouseLeft) != Pressed {
		t.Errorf("expected Pressed, got %v", d.State(common.MouseLeft))
	}
}

func TestDebouncerWindow(t *testing.T) {
	t0 := time.Unix(100, 0)
	cases := []struct {
		name     string
		second   time.Duration
		released bool
		want     int
	}{
		{"same frame duplicate", 0, false, 0},
		{"held within window", 50 * time.Millisecond, false, 0},
		{"re-pressed within window", 50 * time.Millisecond, true, 0},
		{"exactly one window", 100 * time.Millisecond, false, 1},
		{"held after window", 150 * time.Millisecond, false, 1},
		{"re-pressed after window", 150 * time.Millisecond, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDebouncer(DefaultCooldown)
			if got := d.Filter(t0, []common.MouseButton{common.MouseLeft}); len(got) != 1 {
				t.Fatalf("first press: expected one event, got %v", got)
			}
			if tc.released {
				d.Filter(t0.Add(tc.second/2), nil)
				if d.State(common.MouseLeft) != Released {
					t.Fatalf("expected Released after empty sample")
				}
			}
			got := d.Filter(t0.Add(tc.second), []common.MouseButton{common.MouseLeft})
			if len(got) != tc.want {
				t.Errorf("expected %d events, got %v", tc.want, got)
			}
		})
	}
}

func TestDebouncerBounceInsideCooldownIsSilent(t *testing.T) {
	d := NewDebouncer(DefaultCooldown)
	t0 := time.Unix(100, 0)
	left := []common.MouseButton{common.MouseLeft}

	d.Filter(t0, left)
	d.Filter(t0.Add(20*time.Millisecond), nil)
	if got := d.Filter(t0.Add(50*time.Millisecond), left); len(got) != 0 {
		t.Fatalf("expected release and re-press at 50ms to emit nothing, got %v", got)
	}
	if d.State(common.MouseLeft) != Pressed {
		t.Errorf("expected the suppressed press to still track Pressed")
	}

	d.Filter(t0.Add(70*time.Millisecond), nil)
	if got := d.Filter(t0.Add(120*time.Millisecond), left); len(got) != 1 {
		t.Errorf("expected a re-press after the window to emit, got %v", got)
	}
}

func TestDebouncerDuplicateButtonsInOneSample(t *testing.T) {
	d := NewDebouncer(DefaultCooldown)
	got := d.Filter(time.Unix(1, 0), []common.MouseButton{common.MouseLeft, common.MouseLeft})
	if len(got) != 1 {
		t.Errorf("expected a single event for duplicated samples, got %v", got)
	}
}

func TestDebouncerButtonsAreIndependent(t *testing.T) {
	d := NewDebouncer(DefaultCooldown)
	t0 := time.Unix(1, 0)

	d.Filter(t0, []common.MouseButton{common.MouseLeft})
	got := d.Filter(t0.Add(10*time.Millisecond), []common.MouseButton{common.MouseLeft, common.MouseRight})
	if len(got) != 1 || got[0] != common.MouseRight {
		t.Errorf("expected only MouseRight, got %v", got)
	}
}

func TestDebouncerDefaultsNonPositiveCooldown(t *testing.T) {
	if c := NewDebouncer(0).Cooldown(); c != DefaultCooldown {
		t.Errorf("expected %v, got %v", DefaultCooldown, c)
	}
}
