package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Attachment is an image sent alongside a prompt for vision-capable
// engines.
type Attachment struct {
	Data []byte
	MIME string
}

// Engine generates text from a system prompt, a user prompt, and
// optional image attachments.
type Engine interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, system, user string, atts []Attachment) (string, error)
}

// Engines is the registry of configured engines, keyed by short name.
type Engines struct {
	byName map[string]Engine
	order  []Engine
}

// NewEngines registers engines in fallback order.
func NewEngines(engines ...Engine) *Engines {
	e := &Engines{byName: make(map[string]Engine)}
	for _, eng := range engines {
		e.byName[eng.Name()] = eng
		e.order = append(e.order, eng)
	}
	return e
}

// Get returns the engine with the given name, or the first registered
// engine when name is empty.
func (e *Engines) Get(name string) (Engine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		if len(e.order) == 0 {
			return nil, fmt.Errorf("no engines configured")
		}
		return e.order[0], nil
	}
	eng, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return eng, nil
}

// Order returns the engines in registration order.
func (e *Engines) Order() []Engine { return e.order }

// Manager tracks a per-chat engine selection for the bot.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
