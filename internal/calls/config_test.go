package calls

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glbridge/internal/gl"
)

func TestCompileConfig(t *testing.T) {
	v := cuecontext.New().CompileString(`
		suppressed: ["drawArrays"]
		sync: ["getError", "isEnabled"]
		async: ["viewport"]
		create: {
			createQuery: "unknown"
			createSampler: "texture"
		}
	`)
	require.NoError(t, v.Err())

	cfg, err := CompileConfig(v)
	require.NoError(t, err)

	assert.Equal(t, []Name{"drawArrays"}, cfg.Suppressed)
	assert.Equal(t, []Name{"getError", "isEnabled"}, cfg.Sync)
	assert.Equal(t, []Name{"viewport"}, cfg.Async)
	assert.Equal(t, map[Name]gl.Kind{
		"createQuery":   gl.KindUnknown,
		"createSampler": gl.KindTexture,
	}, cfg.Create)
}

func TestCompileConfig_Empty(t *testing.T) {
	cfg, err := CompileConfig(cuecontext.New().CompileString(``))
	require.NoError(t, err)
	assert.Empty(t, cfg.Suppressed)
	assert.Empty(t, cfg.Create)
}

func TestCompileConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", `suppress: ["clear"]`, "suppress: unknown field"},
		{"not a list", `sync: "getError"`, "sync: must be a list"},
		{"non-string name", `async: [1]`, "async: call names must be strings"},
		{"bad kind", `create: {createQuery: "query"}`, `unknown handle kind "query"`},
		{"kind not string", `create: {createQuery: 3}`, "handle kind must be a string"},
		{"create not struct", `create: ["createQuery"]`, "create: must map call names"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := cuecontext.New().CompileString(tt.src)
			require.NoError(t, v.Err())
			_, err := CompileConfig(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var ce *CompileError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestCompileConfig_CUEError(t *testing.T) {
	v := cuecontext.New().CompileString(`sync: [`)
	_, err := CompileConfig(v)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Suppressed: []Name{"clear", "", "clear"},
		Sync:       []Name{"clear", "configure"},
		Create:     map[Name]gl.Kind{"startFrame": gl.KindUnknown},
	}

	errs := Validate(cfg)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{
		ErrEmptyName,
		ErrDuplicateEntry,
		ErrDuplicateClass,
		ErrReservedName,
		ErrReservedName,
	}, codes)
	assert.Equal(t, `[E102] sync: "clear" is also listed under suppressed`, errs[2].Error())
}

func TestValidate_Clean(t *testing.T) {
	assert.Empty(t, Validate(&Config{Suppressed: []Name{"clear"}, Sync: []Name{"getError"}}))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.cue")
	require.NoError(t, os.WriteFile(path, []byte(`suppressed: ["drawArrays"]`+"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []Name{"drawArrays"}, cfg.Suppressed)
}

func TestLoadConfig_PositionInError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.cue")
	require.NoError(t, os.WriteFile(path, []byte("sync: [\"getError\"]\nbogus: true\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calls.cue:2:")
	assert.Contains(t, err.Error(), "bogus: unknown field")
}

func TestLoadConfig_ValidationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.cue")
	require.NoError(t, os.WriteFile(path, []byte(`sync: ["clear", "clear"]`), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrDuplicateEntry)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
