package commandsink

import (
	"context"
	"sync"

	"github.com/sahakari-society/members-console/internal/ports/out/commandsink"
)

// DefaultMaxCommands bounds the number of remembered commands.
const DefaultMaxCommands = 256

// Sink keeps the most recent dispatched commands in memory and does nothing
// else with them. Once full it drops the oldest command first.
type Sink struct {
	mu   sync.Mutex
	max  int
	cmds []commandsink.Command
}

func NewSink() *Sink {
	return NewSinkWithLimit(DefaultMaxCommands)
}

func NewSinkWithLimit(max int) *Sink {
	if max < 1 {
		max = 1
	}
	return &Sink{max: max}
}

func (s *Sink) Dispatch(ctx context.Context, cmd commandsink.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cmds) >= s.max {
		n := copy(s.cmds, s.cmds[len(s.cmds)-s.max+1:])
		s.cmds = s.cmds[:n]
	}
	s.cmds = append(s.cmds, cmd)
	return nil
}

// Commands returns the remembered commands in dispatch order.
func (s *Sink) Commands() []commandsink.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]commandsink.Command, len(s.cmds))
	copy(out, s.cmds)
	return out
}
