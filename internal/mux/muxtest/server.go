// Package muxtest provides an in-memory tmux double for controller tests.
//
// Server understands exactly the subset of tmux used by ranger-drop:
// display, display-message, resize-pane, split-window, send-keys,
// select-window, select-pane, show, set. Panes are kept top to bottom.
package muxtest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timvw/ranger-drop/internal/mux"
)

// Pane is a simulated tmux pane.
type Pane struct {
	ID           string
	Height       int
	Path         string
	StartCommand string
	PID          int
}

// SentKey is one recorded send-keys call.
type SentKey struct {
	Target  string
	Literal bool
	Key     string
}

// Server is a fake mux.Runner.
type Server struct {
	mu sync.Mutex

	WindowHeight int
	// Panes are ordered top to bottom; Panes[0] is {top}.
	Panes  []*Pane
	Active string

	Options map[string]string
	// UnsetOptionFails makes "show -v" of an unset option exit non-zero
	// ("invalid option") instead of printing nothing.
	UnsetOptionFails bool

	// FailOn makes every call to the named subcommand fail.
	FailOn map[string]string

	Calls    [][]string
	Keys     []SentKey
	Messages []string
	Windows  []string

	nextPane int
	nextPID  int
}

// NewServer returns a server with one window of the given height holding
// a single shell pane %0 in dir.
func NewServer(windowHeight int, dir string) *Server {
	return &Server{
		WindowHeight: windowHeight,
		Panes:        []*Pane{{ID: "%0", Height: windowHeight, Path: dir, PID: 1000}},
		Active:       "%0",
		Options:      map[string]string{},
		nextPane:     1,
		nextPID:      2000,
	}
}

// Pane returns the pane with id, or nil.
func (s *Server) Pane(id string) *Pane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// CallsTo returns the recorded calls of one subcommand.
func (s *Server) CallsTo(sub string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][]string
	for _, c := range s.Calls {
		if len(c) > 0 && c[0] == sub {
			out = append(out, c)
		}
	}
	return out
}

// Run implements mux.Runner.
func (s *Server) Run(ctx context.Context, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, append([]string(nil), args...))
	if len(args) == 0 {
		return "", s.fail(args, "no command")
	}
	if msg, ok := s.FailOn[args[0]]; ok {
		return "", s.fail(args, msg)
	}

	switch args[0] {
	case "display", "display-message":
		return s.display(args)
	case "resize-pane":
		return "", s.resize(args)
	case "split-window":
		return s.split(args)
	case "send-keys":
		f := parse(args[1:], "t")
		if len(f.pos) != 1 {
			return "", s.fail(args, "expected one key")
		}
		target := f.val["t"]
		if target == "" {
			target = s.Active
		}
		s.Keys = append(s.Keys, SentKey{Target: target, Literal: f.has("l"), Key: f.pos[0]})
		return "", nil
	case "select-window":
		f := parse(args[1:], "t")
		if s.find(f.val["t"]) == nil {
			return "", s.fail(args, "can't find window: "+f.val["t"])
		}
		s.Windows = append(s.Windows, f.val["t"])
		return "", nil
	case "select-pane":
		f := parse(args[1:], "t")
		if s.find(f.val["t"]) == nil {
			return "", s.fail(args, "can't find pane: "+f.val["t"])
		}
		s.Active = s.find(f.val["t"]).ID
		return "", nil
	case "show":
		f := parse(args[1:])
		if len(f.pos) != 1 {
			return "", s.fail(args, "expected option name")
		}
		v, ok := s.Options[f.pos[0]]
		if !ok && s.UnsetOptionFails {
			return "", s.fail(args, "invalid option: "+f.pos[0])
		}
		return v, nil
	case "set":
		f := parse(args[1:])
		if f.has("u") && len(f.pos) == 1 {
			delete(s.Options, f.pos[0])
			return "", nil
		}
		if len(f.pos) != 2 {
			return "", s.fail(args, "expected option name and value")
		}
		s.Options[f.pos[0]] = f.pos[1]
		return "", nil
	}
	return "", s.fail(args, "unknown command: "+args[0])
}

func (s *Server) display(args []string) (string, error) {
	f := parse(args[1:], "t")
	if !f.has("p") {
		s.Messages = append(s.Messages, strings.Join(f.pos, " "))
		return "", nil
	}
	target := f.val["t"]
	if target == "" {
		target = s.Active
	}
	p := s.find(target)
	if p == nil {
		return "", s.fail(args, "can't find pane: "+target)
	}
	return s.expand(strings.Join(f.pos, " "), p), nil
}

func (s *Server) resize(args []string) error {
	f := parse(args[1:], "t", "y")
	p := s.find(f.val["t"])
	if p == nil {
		return s.fail(args, "can't find pane: "+f.val["t"])
	}
	if y, ok := f.val["y"]; ok {
		h, err := s.size(y)
		if err != nil {
			return s.fail(args, err.Error())
		}
		p.Height = h
		return nil
	}
	n := 1
	if len(f.pos) == 1 {
		v, err := strconv.Atoi(f.pos[0])
		if err != nil {
			return s.fail(args, "invalid adjustment")
		}
		n = v
	}
	switch {
	case f.has("D"):
		p.Height += n
	case f.has("U"):
		p.Height -= n
	}
	p.Height = clamp(p.Height, 0, s.WindowHeight)
	return nil
}

func (s *Server) split(args []string) (string, error) {
	f := parse(args[1:], "F", "c", "t", "l")
	if s.find(f.val["t"]) == nil {
		return "", s.fail(args, "can't find pane: "+f.val["t"])
	}
	h, err := s.size(f.val["l"])
	if err != nil {
		return "", s.fail(args, err.Error())
	}
	p := &Pane{
		ID:           fmt.Sprintf("%%%d", s.nextPane),
		Height:       h,
		Path:         f.val["c"],
		StartCommand: mux.StartCommand(f.pos),
		PID:          s.nextPID,
	}
	s.nextPane++
	s.nextPID++
	if f.has("b") {
		s.Panes = append([]*Pane{p}, s.Panes...)
	} else {
		s.Panes = append(s.Panes, p)
	}
	s.Active = p.ID
	// Like tmux, print the new pane only when asked to with -P.
	if !f.has("P") {
		return "", nil
	}
	return s.expand(f.val["F"], p), nil
}

func (s *Server) size(v string) (int, error) {
	if strings.HasSuffix(v, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", v)
		}
		return clamp(pct*s.WindowHeight/100, 0, s.WindowHeight), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", v)
	}
	return clamp(n, 0, s.WindowHeight), nil
}

func (s *Server) expand(format string, p *Pane) string {
	r := strings.NewReplacer(
		"#{pane_id}", p.ID,
		"#{pane_height}", strconv.Itoa(p.Height),
		"#{pane_current_path}", p.Path,
		"#{pane_start_command}", p.StartCommand,
		"#{pane_pid}", strconv.Itoa(p.PID),
		"#{window_height}", strconv.Itoa(s.WindowHeight),
	)
	return r.Replace(format)
}

func (s *Server) find(target string) *Pane {
	if target == mux.TopPane {
		if len(s.Panes) == 0 {
			return nil
		}
		return s.Panes[0]
	}
	for _, p := range s.Panes {
		if p.ID == target {
			return p
		}
	}
	return nil
}

func (s *Server) fail(args []string, msg string) error {
	return &mux.ExternalCommandError{Args: args, ExitCode: 1, Stderr: msg}
}

type flags struct {
	val map[string]string
	on  map[byte]bool
	pos []string
}

func (f flags) has(name string) bool {
	return f.on[name[0]]
}

// parse splits tmux-style arguments. Flags listed in valued take the next
// argument; other single-letter flags may be combined ("-bfv"). Parsing
// stops at the first positional argument, as getopt does.
func parse(args []string, valued ...string) flags {
	f := flags{val: map[string]string{}, on: map[byte]bool{}}
	takes := map[string]bool{}
	for _, v := range valued {
		takes[v] = true
	}
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) < 2 || a[0] != '-' {
			f.pos = append(f.pos, args[i:]...)
			break
		}
		name := a[1:]
		if takes[name] && i+1 < len(args) {
			f.val[name] = args[i+1]
			i++
			continue
		}
		for j := 0; j < len(name); j++ {
			f.on[name[j]] = true
		}
	}
	return f
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
