package commands

import (
	"fmt"

	"github.com/meenmo/timevalue/cmd/tvm/internal/request"
)

type output interface {
	failed() bool
}

// runBatch decodes the input, applies process to every request and writes
// the outputs in the shape the requests arrived in.
func runBatch[In any, Out output](a *app, name string, process func(In) Out) error {
	raw, err := a.readInput()
	if err != nil {
		return a.writeFatal(fmt.Sprintf("read input: %v", err))
	}

	reqs, isBatch, err := request.Decode[In](raw)
	if err != nil {
		return a.writeFatal(fmt.Sprintf("parse input: %v", err))
	}

	hadError := false
	outs := make([]Out, 0, len(reqs))
	for i, req := range reqs {
		out := process(req)
		if out.failed() {
			hadError = true
			a.log.Warn().Str("command", name).Int("request", i).Msg("request failed")
		}
		outs = append(outs, out)
	}
	a.log.Debug().Str("command", name).Int("requests", len(reqs)).Bool("errors", hadError).Msg("batch done")

	var payload any = outs
	if !isBatch {
		payload = outs[0]
	}
	if err := a.writeJSON(payload); err != nil {
		return err
	}
	if hadError {
		return errRequestFailed
	}
	return nil
}
