package calls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glbridge/internal/gl"
)

func TestDefault_Classification(t *testing.T) {
	table := Default()

	tests := []struct {
		name  Name
		class Class
		kind  gl.Kind
	}{
		{Clear, ClassSuppressed, gl.KindUnknown},
		{ClearColor, ClassSuppressed, gl.KindUnknown},
		{GetExtension, ClassSuppressed, gl.KindUnknown},
		{Viewport, ClassSuppressed, gl.KindUnknown},
		{CreateShader, ClassCreate, gl.KindShader},
		{CreateProgram, ClassCreate, gl.KindProgram},
		{GetUniformLocation, ClassCreate, gl.KindUniformLocation},
		{CreateBuffer, ClassCreate, gl.KindBuffer},
		{CreateRenderbuffer, ClassCreate, gl.KindRenderbuffer},
		{CreateFramebuffer, ClassCreate, gl.KindFramebuffer},
		{CreateTexture, ClassCreate, gl.KindTexture},
		{GetParameter, ClassSync, gl.KindUnknown},
		{GetActiveAttrib, ClassSync, gl.KindUnknown},
		{GetActiveUniform, ClassSync, gl.KindUnknown},
		{GetAttribLocation, ClassSync, gl.KindUnknown},
		{GetProgramParameter, ClassSync, gl.KindUnknown},
		{GetShaderPrecisionFormat, ClassSync, gl.KindUnknown},
		{GetShaderInfoLog, ClassSync, gl.KindUnknown},
		{GetShaderParameter, ClassSync, gl.KindUnknown},
		{DrawArrays, ClassAsync, gl.KindUnknown},
		{"getError", ClassAsync, gl.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			e := table.Lookup(tt.name)
			assert.Equal(t, tt.class, e.Class)
			assert.Equal(t, tt.kind, e.Kind)
		})
	}

	assert.Len(t, table.Names(ClassSuppressed), 4)
	assert.Len(t, table.Names(ClassCreate), 7)
	assert.Len(t, table.Names(ClassSync), 8)
}

func TestDefault_NormalizeHooks(t *testing.T) {
	table := Default()
	assert.NotNil(t, table.Lookup(BufferData).Normalize)
	assert.NotNil(t, table.Lookup(TexImage2D).Normalize)
	assert.Nil(t, table.Lookup(DrawArrays).Normalize)
}

func TestTable_ApplyDoesNotMutate(t *testing.T) {
	base := Default()
	cfg := &Config{
		Suppressed: []Name{DrawArrays},
		Async:      []Name{Viewport},
		Sync:       []Name{"getError"},
		Create:     map[Name]gl.Kind{"createQuery": gl.KindUnknown},
	}

	out := base.Apply(cfg)

	assert.Equal(t, ClassSuppressed, out.Lookup(DrawArrays).Class)
	assert.Equal(t, ClassAsync, out.Lookup(Viewport).Class)
	assert.Equal(t, ClassSync, out.Lookup("getError").Class)
	assert.Equal(t, ClassCreate, out.Lookup("createQuery").Class)

	assert.Equal(t, ClassAsync, base.Lookup(DrawArrays).Class, "base table must be unchanged")
	assert.Equal(t, ClassSuppressed, base.Lookup(Viewport).Class)
}

func TestTable_ApplyKeepsHook(t *testing.T) {
	out := Default().Apply(&Config{Sync: []Name{BufferData}})
	e := out.Lookup(BufferData)
	assert.Equal(t, ClassSync, e.Class)
	require.NotNil(t, e.Normalize, "reclassified call keeps its normalization")
}

func TestTable_ApplyNil(t *testing.T) {
	base := Default()
	assert.Equal(t, len(base), len(base.Apply(nil)))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "async", ClassAsync.String())
	assert.Equal(t, "suppressed", ClassSuppressed.String())
	assert.Equal(t, "create", ClassCreate.String())
	assert.Equal(t, "sync", ClassSync.String())
	assert.Equal(t, "Class(9)", Class(9).String())
}
