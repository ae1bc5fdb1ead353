package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"go string", "hello", `"hello"`},
		{"int", Int(42), "42"},
		{"go int", 42, "42"},
		{"min int64", Int(-9223372036854775808), "-9223372036854775808"},
		{"float", Float(0.125), "0.125"},
		{"bool", Bool(true), "true"},
		{"null", Null{}, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"no html escaping", String("<a&b>"), `"<a&b>"`},
		{"sorted keys", Object{"zebra": Int(1), "alpha": Int(2)}, `{"alpha":2,"zebra":1}`},
		{"go map", map[string]any{"b": []any{1, "x"}, "a": true}, `{"a":true,"b":[1,"x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	result, err := MarshalCanonical(String("e\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	result, err := MarshalCanonical(String("a\u2028b\u2029c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(result))
}

func TestMarshalCanonical_EscapedBackslashBeforeU2028Text(t *testing.T) {
	// A literal backslash followed by the text u2028 must stay escaped.
	result, err := MarshalCanonical(String(`\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(result))
}

func TestMarshalCanonical_Descriptor(t *testing.T) {
	d := NewDescriptor("createTexture", nil).WithCorrelationID(3)

	result, err := MarshalCanonical(d)
	require.NoError(t, err)
	assert.Equal(t, `{"args":[],"correlationId":3,"name":"createTexture"}`, string(result))
}

func TestMarshalCanonical_DescriptorInsideTrace(t *testing.T) {
	d := NewDescriptor("flush", nil)

	result, err := MarshalCanonical([]any{d, "startFrame"})
	require.NoError(t, err)
	assert.Equal(t, `[{"args":[],"name":"flush"},"startFrame"]`, string(result))
}

func TestMarshalCanonical_Unsupported(t *testing.T) {
	_, err := MarshalCanonical(struct{}{})
	assert.Error(t, err)
}
