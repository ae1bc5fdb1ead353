package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glbridge/internal/ir"
)

func TestRecorder_RecordsInOrder(t *testing.T) {
	r := NewRecorder()
	r.CallAsync(ir.FrameBegin)
	_, err := r.CallSync(`{"name":"getParameter","args":[7938]}`)
	require.NoError(t, err)
	r.CallAsync(ir.FrameEnd)

	assert.Equal(t, []Message{
		{Kind: KindAsync, Body: "startFrame"},
		{Kind: KindSync, Body: `{"name":"getParameter","args":[7938]}`},
		{Kind: KindAsync, Body: "endFrame"},
	}, r.Messages())
}

func TestRecorder_Replies(t *testing.T) {
	r := NewRecorder()
	r.SetReply("getShaderInfoLog", `{"resultString":"ok"}`)

	reply, err := r.CallSync(`{"name":"getShaderInfoLog","args":[{"correlationId":1}]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"resultString":"ok"}`, reply)

	reply, err = r.CallSync(`{"name":"getParameter","args":[1]}`)
	require.NoError(t, err)
	assert.Equal(t, "null", reply, "unregistered calls reply null")
}

func TestRecorder_Responder(t *testing.T) {
	r := NewRecorder()
	r.SetReply("getParameter", "1")
	r.SetResponder(func(d *ir.Descriptor) (string, error) {
		if d.Name == "getParameter" {
			return "", errors.New("host gone")
		}
		return "2", nil
	})

	_, err := r.CallSync(`{"name":"getParameter","args":[]}`)
	require.EqualError(t, err, "host gone")

	reply, err := r.CallSync(`{"name":"getAttribLocation","args":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "2", reply)
}

func TestRecorder_MalformedSync(t *testing.T) {
	r := NewRecorder()
	_, err := r.CallSync("startFrame")
	require.Error(t, err)
	assert.Len(t, r.Messages(), 1, "malformed messages are still recorded")
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder()
	r.SetReply("getParameter", "5")
	r.CallAsync("startFrame")
	r.Reset()
	assert.Empty(t, r.Messages())

	reply, err := r.CallSync(`{"name":"getParameter","args":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "5", reply)
	assert.Equal(t, []string{`{"name":"getParameter","args":[]}`}, r.Bodies())
}

func TestFuncs_Defaults(t *testing.T) {
	reply, err := Discard.CallSync("anything")
	require.NoError(t, err)
	assert.Equal(t, "null", reply)
	Discard.CallAsync("dropped")

	var got []string
	f := Funcs{Async: func(msg string) { got = append(got, msg) }}
	f.CallAsync("a")
	f.CallAsync("b")
	assert.Equal(t, []string{"a", "b"}, got)
}
