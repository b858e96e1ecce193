// Package transcript reads and writes recorded games: one JSON object
// per line, each naming the agent to move and what it observed.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pactician/pactician/capture"
)

type record struct {
	Agent       int                  `json:"agent"`
	Observation *capture.Observation `json:"observation"`
}

type Frame struct {
	Agent int
	State *capture.Snapshot
}

// Read decodes every frame in r. Frames after the first may leave
// the layout out and inherit the previous one.
func Read(r io.Reader) ([]Frame, error) {
	var (
		out    []Frame
		layout *capture.Layout
	)
	dec := json.NewDecoder(r)
	for i := 0; ; i++ {
		var rec record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if rec.Observation == nil {
			return nil, fmt.Errorf("frame %d: no observation", i)
		}
		if len(rec.Observation.Layout) > 0 {
			l, err := capture.LayoutFromRows(rec.Observation.Layout)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			layout = l
		}
		if layout == nil {
			return nil, fmt.Errorf("frame %d: no layout", i)
		}
		s, err := rec.Observation.Snapshot(layout)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if rec.Agent < 0 || rec.Agent >= s.NumAgents() {
			return nil, fmt.Errorf("frame %d: bad agent %d", i, rec.Agent)
		}
		out = append(out, Frame{Agent: rec.Agent, State: s})
	}
	if len(out) == 0 {
		return nil, errors.New("empty transcript")
	}
	return out, nil
}

func Open(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write appends frames to w, giving the layout only when it changes.
func Write(w io.Writer, frames []Frame) error {
	enc := json.NewEncoder(w)
	var last *capture.Layout
	for _, f := range frames {
		o := capture.Observe(f.State)
		if f.State.Layout() == last {
			o.Layout = nil
		}
		last = f.State.Layout()
		if err := enc.Encode(&record{Agent: f.Agent, Observation: o}); err != nil {
			return err
		}
	}
	return nil
}
