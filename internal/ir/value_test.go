package ir

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandle struct{ id int64 }

func (h *stubHandle) CorrelationID() int64 { return h.id }

type enum uint32

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = Bool(true)
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Object{"key": String("value")}
}

func TestObjectSortedKeysRFC8785Order(t *testing.T) {
	obj := Object{
		"a":  Int(1),
		"A":  Int(2),
		"aa": Int(3),
		"aA": Int(4),
		"Aa": Int(5),
		"AA": Int(6),
	}

	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"nil", nil, Null{}},
		{"string", "main", String("main")},
		{"bool", true, Bool(true)},
		{"int", 7, Int(7)},
		{"uint32", uint32(35633), Int(35633)},
		{"named enum", enum(3553), Int(3553)},
		{"float64", 0.25, Float(0.25)},
		{"float32 shortest form", float32(0.1), Float(0.1)},
		{"float32 slice", []float32{1, 0.5, -0.1}, Array{Float(1), Float(0.5), Float(-0.1)}},
		{"uint16 slice", []uint16{0, 1, 2}, Array{Int(0), Int(1), Int(2)}},
		{"byte slice", []byte{255, 0}, Array{Int(255), Int(0)}},
		{"any slice", []any{"x", 1, nil}, Array{String("x"), Int(1), Null{}}},
		{"map", map[string]any{"alpha": false}, Object{"alpha": Bool(false)}},
		{"handle", &stubHandle{id: 4}, Object{CorrelationKey: Int(4)}},
		{"nil handle", (*stubHandle)(nil), Null{}},
		{"value passthrough", Int(9), Int(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromGo_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"struct", struct{ X int }{1}},
		{"channel", make(chan int)},
		{"NaN", math.NaN()},
		{"Inf float32", float32(math.Inf(1))},
		{"unstamped handle", &stubHandle{}},
		{"huge uint64", uint64(math.MaxUint64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromGo(tt.input)
			require.Error(t, err)
			assert.True(t, IsUnsupportedPayload(err), "got %v", err)
		})
	}
}

func TestMarshalValue(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"null", Null{}, "null"},
		{"nil", nil, "null"},
		{"string", String(`a"b`), `"a\"b"`},
		{"int", Int(-3), "-3"},
		{"float", Float(0.5), "0.5"},
		{"integral float", Float(2), "2"},
		{"bool", Bool(false), "false"},
		{"array", Array{Int(1), Float(1.5), String("x")}, `[1,1.5,"x"]`},
		{"object sorted", Object{"z": Int(1), "a": Null{}}, `{"a":null,"z":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalValue_NonFiniteFloat(t *testing.T) {
	_, err := MarshalValue(Float(math.Inf(-1)))
	assert.Error(t, err)
}

func TestUnmarshalValue(t *testing.T) {
	v, err := UnmarshalValue([]byte(`{"n":1,"f":1.25,"e":1e3,"s":"x","b":true,"z":null,"a":[1,"2"]}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, Int(1), obj["n"])
	assert.Equal(t, Float(1.25), obj["f"])
	assert.Equal(t, Float(1000), obj["e"])
	assert.Equal(t, String("x"), obj["s"])
	assert.Equal(t, Bool(true), obj["b"])
	assert.Equal(t, Null{}, obj["z"])
	assert.Equal(t, Array{Int(1), String("2")}, obj["a"])
}

func TestUnmarshalValue_TrailingData(t *testing.T) {
	_, err := UnmarshalValue([]byte(`1 2`))
	assert.Error(t, err)
}

func TestObjectRoundTripThroughEncodingJSON(t *testing.T) {
	in := Object{"size": Int(3), "name": String("aPosition")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"aPosition","size":3}`, string(data))

	var out Object
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestToGo(t *testing.T) {
	v := Object{
		"list": Array{Int(1), Float(0.5), Bool(true), Null{}},
		"name": String("u"),
	}

	got := ToGo(v)
	assert.Equal(t, map[string]any{
		"list": []any{int64(1), 0.5, true, nil},
		"name": "u",
	}, got)
}
