package clock

import (
	"testing"
	"time"
)

func TestFake_AdvanceFiresDueTimers(t *testing.T) {
	c := NewFake()
	var fired []string

	c.AfterFunc(2*time.Second, func() { fired = append(fired, "a") })
	c.AfterFunc(1*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(5*time.Second, func() { fired = append(fired, "c") })

	c.Advance(3 * time.Second)

	if len(fired) != 2 || fired[0] != "b" || fired[1] != "a" {
		t.Errorf("fired = %v, want [b a]", fired)
	}

	c.Advance(2 * time.Second)
	if len(fired) != 3 || fired[2] != "c" {
		t.Errorf("fired = %v, want [b a c]", fired)
	}
}

func TestFake_StopPreventsFiring(t *testing.T) {
	c := NewFake()
	fired := false

	timer := c.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Error("Stop() on pending timer should return true")
	}
	if timer.Stop() {
		t.Error("Stop() on stopped timer should return false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer must not fire")
	}
}

func TestFake_CallbackCanReschedule(t *testing.T) {
	c := NewFake()
	count := 0

	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})

	c.Advance(2 * time.Second)
	if count != 2 {
		t.Errorf("count = %d, want 2 (chained timer fires within same Advance)", count)
	}
}

func TestFake_NowAdvances(t *testing.T) {
	c := NewFake()
	start := c.Now()
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", got)
	}
}
