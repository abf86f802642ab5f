package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidAgent wraps every problem NewAgentRegistry finds.
var ErrInvalidAgent = errors.New("invalid agent definition")

// AgentRegistry indexes agent definitions by id and draws weighted spawns
// for generated levels.
type AgentRegistry struct {
	agents []AgentDef
	byID   map[string]int
}

// NewAgentRegistry checks the definitions and indexes them. Ids must be
// unique and non-empty, and no numeric field may be negative. A spawn weight
// of 0 keeps an agent out of generated levels; hand-built levels can still
// place it.
func NewAgentRegistry(agents []AgentDef) (*AgentRegistry, error) {
	r := &AgentRegistry{agents: agents, byID: make(map[string]int, len(agents))}
	var errs []error
	for i, a := range agents {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("%w: entry %d has no id", ErrInvalidAgent, i))
			continue
		}
		if _, dup := r.byID[a.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate id %q", ErrInvalidAgent, a.ID))
			continue
		}
		r.byID[a.ID] = i
		if a.SpawnWeight < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has spawn weight %d", ErrInvalidAgent, a.ID, a.SpawnWeight))
		}
		if a.MoveCooldown < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has move cooldown %d", ErrInvalidAgent, a.ID, a.MoveCooldown))
		}
		if a.HP < 0 || a.Attack < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has hp %d attack %d", ErrInvalidAgent, a.ID, a.HP, a.Attack))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadAgentRegistry builds a registry from the embedded agents.json.
func LoadAgentRegistry() (*AgentRegistry, error) {
	agents, err := LoadAgents()
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, errors.New("no agents loaded from agents.json")
	}
	return NewAgentRegistry(agents)
}

// SpawnRandom draws one definition with probability proportional to its
// spawn weight, considering only agents allow accepts. A nil allow accepts
// every agent. It returns nil when no accepted agent has a positive weight.
// Exactly one value is drawn from rng per call that returns non-nil.
func (r *AgentRegistry) SpawnRandom(rng *rand.Rand, allow func(*AgentDef) bool) *AgentDef {
	total := 0
	for i := range r.agents {
		if r.spawnable(i, allow) {
			total += r.agents[i].SpawnWeight
		}
	}
	if total == 0 {
		return nil
	}

	roll := rng.Intn(total)
	for i := range r.agents {
		if !r.spawnable(i, allow) {
			continue
		}
		roll -= r.agents[i].SpawnWeight
		if roll < 0 {
			return &r.agents[i]
		}
	}
	return nil
}

func (r *AgentRegistry) spawnable(i int, allow func(*AgentDef) bool) bool {
	a := &r.agents[i]
	return a.SpawnWeight > 0 && (allow == nil || allow(a))
}

// Excluding returns a SpawnRandom filter that rejects the given ids.
func Excluding(ids ...string) func(*AgentDef) bool {
	if len(ids) == 0 {
		return nil
	}
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	return func(a *AgentDef) bool { return !skip[a.ID] }
}

// GetByID returns the agent definition with the given ID, or nil if not found.
func (r *AgentRegistry) GetByID(id string) *AgentDef {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.agents[i]
}

// Count returns the number of agent types in the registry.
func (r *AgentRegistry) Count() int {
	return len(r.agents)
}
