package topicmgr

import "time"

// Scope says whether a topic belongs to the framework or to a bot module.
type Scope string

const (
	ScopeFramework Scope = "framework" // Adapter, transcript, server lifecycle
	ScopeModule    Scope = "module"    // Individual bots (echo, welcome, ...)
)

// Topic is a named pub/sub channel with documentation attached.
type Topic interface {
	Name() string
	Module() string
	Description() string
	Example() string
	Scope() Scope
	Fields() []string
}

// TopicConfig describes a topic before it is defined.
type TopicConfig struct {
	Name        string   `json:"name"`
	Module      string   `json:"module,omitempty"`
	Description string   `json:"description"`
	Example     string   `json:"example,omitempty"`
	Fields      []string `json:"fields,omitempty"`
}

// definition is the concrete Topic returned by DefineFramework and DefineModule.
type definition struct {
	cfg   TopicConfig
	scope Scope
}

// Compile-time interface compliance check
var _ Topic = (*definition)(nil)

// DefineFramework creates a framework topic. Any module in cfg is discarded.
func DefineFramework(cfg TopicConfig) Topic {
	cfg.Module = ""
	return &definition{cfg: cfg, scope: ScopeFramework}
}

// DefineModule creates a topic owned by cfg.Module.
func DefineModule(cfg TopicConfig) Topic {
	return &definition{cfg: cfg, scope: ScopeModule}
}

func (d *definition) Name() string { return d.cfg.Name }
func (d *definition) Module() string { return d.cfg.Module }
func (d *definition) Description() string { return d.cfg.Description }
func (d *definition) Example() string { return d.cfg.Example }
func (d *definition) Scope() Scope { return d.scope }
func (d *definition) String() string { return d.cfg.Name }

// Fields returns a copy of the documented payload fields.
func (d *definition) Fields() []string {
	out := make([]string, len(d.cfg.Fields))
	copy(out, d.cfg.Fields)
	return out
}

// Entry is a registered topic together with registration metadata.
type Entry struct {
	Topic        Topic     `json:"-"`
	Name         string    `json:"name"`
	Module       string    `json:"module,omitempty"`
	Scope        Scope     `json:"scope"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`
}
