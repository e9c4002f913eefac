package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wippyai/lifetime/shared"
	"github.com/wippyai/lifetime/track"
)

// payload is the value the sandbox manages; Drop is the observable
// destruction signal.
type payload struct {
	shared.SelfRef[payload]
	sb   *sandbox
	name string
}

func (p *payload) Drop() {
	p.sb.dropped = append(p.sb.dropped, p.name)
}

// sandbox executes handle-manipulation commands against a tracked
// registry. Both the script mode and the TUI drive one of these.
type sandbox struct {
	reg     *track.Registry
	strongs map[string]*shared.Shared[payload]
	weaks   map[string]*shared.Weak[payload]
	dropped []string
}

func newSandbox() *sandbox {
	reg := track.NewRegistry()
	shared.SetTracker(reg)
	return &sandbox{
		reg:     reg,
		strongs: make(map[string]*shared.Shared[payload]),
		weaks:   make(map[string]*shared.Weak[payload]),
	}
}

// exec runs a single command and returns its output.
func (sb *sandbox) exec(line string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "make", "wrap":
		return sb.construct(cmd, args)
	case "clone":
		return sb.clone(args)
	case "alias":
		return sb.alias(args)
	case "weak":
		return sb.weak(args)
	case "lock":
		return sb.lock(args)
	case "self":
		return sb.self(args)
	case "drop":
		return sb.drop(args)
	case "count":
		return sb.count(args)
	case "list":
		return sb.list(), nil
	case "stats":
		return sb.stats(), nil
	case "help":
		return usage, nil
	default:
		return "", fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

const usage = `commands:
  make NAME          co-allocated value under a strong handle
  wrap NAME          separately allocated value under a strong handle
  clone SRC DST      duplicate a strong handle
  alias SRC DST      aliased strong handle sharing SRC's block
  weak SRC DST       weak observer of a strong handle
  lock WEAK DST      promote a weak observer (fails if expired)
  self SRC DST       shared-from-this through the value itself
  drop NAME          release a handle (strong or weak)
  count NAME         use count seen by a handle
  list               all named handles
  stats              registry bookkeeping`

func (sb *sandbox) construct(kind string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s NAME", kind)
	}
	name := args[0]
	if err := sb.fresh(name); err != nil {
		return "", err
	}

	var s shared.Shared[payload]
	if kind == "make" {
		s = shared.Make(payload{sb: sb, name: name})
	} else {
		s = shared.Wrap(&payload{sb: sb, name: name})
	}
	sb.strongs[name] = &s
	return fmt.Sprintf("%s: strong handle, use count %d", name, s.UseCount()), nil
}

func (sb *sandbox) clone(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("clone SRC DST")
	}
	src, err := sb.strong(args[0])
	if err != nil {
		return "", err
	}
	if err := sb.fresh(args[1]); err != nil {
		return "", err
	}
	c := src.Clone()
	sb.strongs[args[1]] = &c
	return fmt.Sprintf("%s: clone of %s, use count %d", args[1], args[0], c.UseCount()), nil
}

func (sb *sandbox) alias(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("alias SRC DST")
	}
	src, err := sb.strong(args[0])
	if err != nil {
		return "", err
	}
	if err := sb.fresh(args[1]); err != nil {
		return "", err
	}
	a := shared.Alias(src, src.Get())
	sb.strongs[args[1]] = &a
	return fmt.Sprintf("%s: alias of %s, use count %d", args[1], args[0], a.UseCount()), nil
}

func (sb *sandbox) weak(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("weak SRC DST")
	}
	src, err := sb.strong(args[0])
	if err != nil {
		return "", err
	}
	if err := sb.fresh(args[1]); err != nil {
		return "", err
	}
	w := shared.Downgrade(src)
	sb.weaks[args[1]] = &w
	return fmt.Sprintf("%s: weak observer of %s", args[1], args[0]), nil
}

func (sb *sandbox) lock(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("lock WEAK DST")
	}
	w, ok := sb.weaks[args[0]]
	if !ok {
		return "", fmt.Errorf("no weak handle %q", args[0])
	}
	if err := sb.fresh(args[1]); err != nil {
		return "", err
	}
	s, err := w.TryLock()
	if err != nil {
		return "", fmt.Errorf("lock %s: %w", args[0], err)
	}
	sb.strongs[args[1]] = &s
	return fmt.Sprintf("%s: promoted from %s, use count %d", args[1], args[0], s.UseCount()), nil
}

func (sb *sandbox) self(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("self SRC DST")
	}
	src, err := sb.strong(args[0])
	if err != nil {
		return "", err
	}
	if err := sb.fresh(args[1]); err != nil {
		return "", err
	}
	s, err := src.Get().SharedFromThis()
	if err != nil {
		return "", fmt.Errorf("self %s: %w", args[0], err)
	}
	sb.strongs[args[1]] = &s
	return fmt.Sprintf("%s: shared-from-this via %s, use count %d", args[1], args[0], s.UseCount()), nil
}

func (sb *sandbox) drop(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("drop NAME")
	}
	name := args[0]
	if s, ok := sb.strongs[name]; ok {
		before := len(sb.dropped)
		s.Release()
		delete(sb.strongs, name)
		if len(sb.dropped) > before {
			return fmt.Sprintf("%s: released, value %s destroyed", name, sb.dropped[len(sb.dropped)-1]), nil
		}
		return fmt.Sprintf("%s: released", name), nil
	}
	if w, ok := sb.weaks[name]; ok {
		w.Release()
		delete(sb.weaks, name)
		return fmt.Sprintf("%s: observer released", name), nil
	}
	return "", fmt.Errorf("no handle %q", name)
}

func (sb *sandbox) count(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("count NAME")
	}
	name := args[0]
	if s, ok := sb.strongs[name]; ok {
		return fmt.Sprintf("%s: use count %d", name, s.UseCount()), nil
	}
	if w, ok := sb.weaks[name]; ok {
		return fmt.Sprintf("%s: use count %d, expired=%v", name, w.UseCount(), w.Expired()), nil
	}
	return "", fmt.Errorf("no handle %q", name)
}

func (sb *sandbox) list() string {
	var names []string
	for n := range sb.strongs {
		names = append(names, n+" (strong)")
	}
	for n := range sb.weaks {
		names = append(names, n+" (weak)")
	}
	if len(names) == 0 {
		return "no handles"
	}
	sort.Strings(names)
	return strings.Join(names, "\n")
}

func (sb *sandbox) stats() string {
	st := sb.reg.Stats()
	return fmt.Sprintf("blocks: %d allocated, %d live, %d destroyed-awaiting-observers, %d freed; values dropped: %d",
		st.Allocated, st.Live, st.Destroyed, st.Freed, len(sb.dropped))
}

func (sb *sandbox) strong(name string) (*shared.Shared[payload], error) {
	s, ok := sb.strongs[name]
	if !ok {
		return nil, fmt.Errorf("no strong handle %q", name)
	}
	return s, nil
}

func (sb *sandbox) fresh(name string) error {
	if _, ok := sb.strongs[name]; ok {
		return fmt.Errorf("handle %q already exists", name)
	}
	if _, ok := sb.weaks[name]; ok {
		return fmt.Errorf("handle %q already exists", name)
	}
	return nil
}
