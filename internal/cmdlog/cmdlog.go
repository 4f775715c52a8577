package cmdlog

import (
	"github.com/rs/zerolog"

	"tweetkit/internal/metrics"
)

// Run executes one CLI command, counting the invocation and logging
// the outcome.
func Run(log zerolog.Logger, cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	err := f()
	if err != nil {
		metrics.IncCommandError(cmd)
		log.Error().Str("command", cmd).Err(err).Msg("command failed")
	} else {
		log.Debug().Str("command", cmd).Msg("command ok")
	}
	return err
}
