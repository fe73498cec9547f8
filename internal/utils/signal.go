package utils

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog"
)

// SetupSignalHandling marks shutdownRequested and calls onShutdown on the
// first SIGINT or SIGTERM. The returned func stops listening.
func SetupSignalHandling(shutdownRequested *int32, onShutdown func(), logger zerolog.Logger) func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn().Str("signal", sig.String()).Msg("shutdown requested, finishing in-flight profiles")
			atomic.StoreInt32(shutdownRequested, 1)
			if onShutdown != nil {
				onShutdown()
			}
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
