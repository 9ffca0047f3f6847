package builtin

import (
	"github.com/df-mc/safespot/server/cmd"
)

type statsCommand struct {
	srv serverAdapter
}

func newStatsCommand(srv serverAdapter) cmd.Command {
	return cmd.New("stats", "Displays safe location search statistics of a world.", "[world]", nil, statsCommand{srv: srv})
}

func (s statsCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	w := worldOf(s.srv, src)
	if len(args) != 0 {
		var ok bool
		if w, ok = s.srv.WorldByName(args[0]); !ok {
			o.Errorf("Unknown world %q.", args[0])
			return
		}
	}
	c := s.srv.Metrics().Counters(w.Name())
	o.Printf("Searches in %v: %d (%d found, %d not found)", w.Name(), c.Searches, c.Found, c.NotFound())
	o.Printf("Candidates examined: %d | Block reads: %d | Cache hits: %d", c.Examined, c.Queries, c.CacheHits)
}

type stopCommand struct {
	srv serverAdapter
}

func newStopCommand(srv serverAdapter) cmd.Command {
	return cmd.New("stop", "Saves the world and stops the server.", "", nil, stopCommand{srv: srv})
}

func (s stopCommand) Run(_ cmd.Source, _ []string, o *cmd.Output) {
	o.Print("Stopping server...")
	if err := s.srv.Close(); err != nil {
		o.Error(err)
	}
}

func (stopCommand) Allow(src cmd.Source) bool {
	_, ok := src.(cmd.ConsoleSource)
	return ok
}
