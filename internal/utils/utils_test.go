//go:build unix

package utils

import (
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 7*time.Second, "3m7s"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1, 4); got != 25 {
		t.Fatalf("Percent(1, 4) = %v", got)
	}
	if got := Percent(3, 0); got != 0 {
		t.Fatalf("Percent(3, 0) = %v", got)
	}
}

func TestSetupSignalHandling(t *testing.T) {
	var requested int32
	called := make(chan struct{})
	stop := SetupSignalHandling(&requested, func() { close(called) }, zerolog.Nop())
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("onShutdown was not called")
	}
	if atomic.LoadInt32(&requested) != 1 {
		t.Fatal("shutdown flag not set")
	}
}
