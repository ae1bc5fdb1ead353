package calls

import (
	"fmt"

	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/normalize"
)

// Class determines how a call is delivered to the host.
type Class int

const (
	// ClassAsync calls are sent fire-and-forget and produce no result.
	ClassAsync Class = iota
	// ClassSuppressed calls are never sent.
	ClassSuppressed
	// ClassCreate calls mint a correlation id and return a handle.
	ClassCreate
	// ClassSync calls block on the host and return its decoded reply.
	ClassSync
)

var classNames = map[Class]string{
	ClassAsync:      "async",
	ClassSuppressed: "suppressed",
	ClassCreate:     "create",
	ClassSync:       "sync",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Entry is the classification of one call.
type Entry struct {
	Class Class

	// Kind is the handle kind minted by a ClassCreate call.
	Kind gl.Kind

	// Normalize rewrites the descriptor arguments, if set.
	Normalize normalize.Hook
}

// Table maps call names to their classification. Names absent from the
// table are ClassAsync with no normalization.
type Table map[Name]Entry

// Lookup returns the entry for name.
func (t Table) Lookup(name Name) Entry {
	if e, ok := t[name]; ok {
		return e
	}
	return Entry{Class: ClassAsync}
}

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Default returns the reference classification.
func Default() Table {
	return Table{
		Clear:        {Class: ClassSuppressed},
		ClearColor:   {Class: ClassSuppressed},
		GetExtension: {Class: ClassSuppressed},
		Viewport:     {Class: ClassSuppressed},

		CreateShader:       {Class: ClassCreate, Kind: gl.KindShader},
		CreateProgram:      {Class: ClassCreate, Kind: gl.KindProgram},
		GetUniformLocation: {Class: ClassCreate, Kind: gl.KindUniformLocation},
		CreateBuffer:       {Class: ClassCreate, Kind: gl.KindBuffer},
		CreateRenderbuffer: {Class: ClassCreate, Kind: gl.KindRenderbuffer},
		CreateFramebuffer:  {Class: ClassCreate, Kind: gl.KindFramebuffer},
		CreateTexture:      {Class: ClassCreate, Kind: gl.KindTexture},

		GetParameter:             {Class: ClassSync},
		GetActiveAttrib:          {Class: ClassSync},
		GetActiveUniform:         {Class: ClassSync},
		GetAttribLocation:        {Class: ClassSync},
		GetProgramParameter:      {Class: ClassSync},
		GetShaderPrecisionFormat: {Class: ClassSync},
		GetShaderInfoLog:         {Class: ClassSync},
		GetShaderParameter:       {Class: ClassSync},

		BufferData: {Class: ClassAsync, Normalize: normalize.BufferDataType},
		TexImage2D: {Class: ClassAsync, Normalize: normalize.TexImageSource},
	}
}

// Apply returns a copy of t with the overrides of cfg merged in. A name
// moved to a new class keeps its normalization hook.
func (t Table) Apply(cfg *Config) Table {
	out := t.Clone()
	if cfg == nil {
		return out
	}
	set := func(name Name, class Class, kind gl.Kind) {
		e := out[name]
		e.Class = class
		e.Kind = kind
		out[name] = e
	}
	for _, name := range cfg.Async {
		set(name, ClassAsync, gl.KindUnknown)
	}
	for _, name := range cfg.Suppressed {
		set(name, ClassSuppressed, gl.KindUnknown)
	}
	for _, name := range cfg.Sync {
		set(name, ClassSync, gl.KindUnknown)
	}
	for name, kind := range cfg.Create {
		set(name, ClassCreate, kind)
	}
	return out
}

// Names returns the names of t with the given class, in no particular order.
func (t Table) Names(class Class) []Name {
	var out []Name
	for name, e := range t {
		if e.Class == class {
			out = append(out, name)
		}
	}
	return out
}
