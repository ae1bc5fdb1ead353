package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Reserved call names and reply fields of the remote-call protocol.
const (
	// FrameBegin is sent, as a bare string, before each animation callback.
	FrameBegin = "startFrame"

	// FrameEnd is sent, as a bare string, after each animation callback.
	FrameEnd = "endFrame"

	// ConfigureCall carries the context configuration payload, once, at wrap time.
	ConfigureCall = "configure"

	// ResultStringKey marks a sync reply whose true result is a string.
	ResultStringKey = "resultString"

	// DataTypeKey is the descriptor field tagging buffer payload element types.
	DataTypeKey = "dataType"
)

// Buffer element type tags understood by the host.
const (
	DataTypeFloat = 5126 // GL_FLOAT, 32-bit float elements
	DataTypeShort = 5122 // GL_SHORT, 16-bit integer elements
)

// Descriptor is the serializable form of one intercepted call.
// It is built fresh per call and must not be modified once sent.
type Descriptor struct {
	Name          string
	Args          Array
	CorrelationID *int64
	DataType      *int
}

// NewDescriptor creates a descriptor for a plain call.
func NewDescriptor(name string, args Array) *Descriptor {
	if args == nil {
		args = Array{}
	}
	return &Descriptor{Name: name, Args: args}
}

// WithCorrelationID stamps the descriptor of a creation call.
func (d *Descriptor) WithCorrelationID(id int64) *Descriptor {
	d.CorrelationID = &id
	return d
}

// WithDataType tags the descriptor of a buffer upload.
func (d *Descriptor) WithDataType(tag int) *Descriptor {
	d.DataType = &tag
	return d
}

// MarshalJSON emits {"name","args","correlationId"?,"dataType"?} in that order.
// Optional fields are omitted entirely when unset.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	name, err := json.Marshal(d.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	buf.WriteString(`,"args":`)
	args := d.Args
	if args == nil {
		args = Array{}
	}
	argBytes, err := args.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", d.Name, err)
	}
	buf.Write(argBytes)

	if d.CorrelationID != nil {
		buf.WriteString(`,"` + CorrelationKey + `":`)
		buf.WriteString(strconv.FormatInt(*d.CorrelationID, 10))
	}
	if d.DataType != nil {
		buf.WriteString(`,"` + DataTypeKey + `":`)
		buf.WriteString(strconv.Itoa(*d.DataType))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler for Descriptor.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}

	name, ok := obj["name"].(String)
	if !ok || name == "" {
		return fmt.Errorf("descriptor: missing name")
	}
	d.Name = string(name)

	switch args := obj["args"].(type) {
	case Array:
		d.Args = args
	case nil:
		return fmt.Errorf("descriptor %s: missing args", name)
	default:
		return fmt.Errorf("descriptor %s: args must be an array, got %T", name, args)
	}

	d.CorrelationID = nil
	if v, ok := obj[CorrelationKey]; ok {
		id, ok := v.(Int)
		if !ok {
			return fmt.Errorf("descriptor %s: %s must be an integer", name, CorrelationKey)
		}
		n := int64(id)
		d.CorrelationID = &n
	}

	d.DataType = nil
	if v, ok := obj[DataTypeKey]; ok {
		tag, ok := v.(Int)
		if !ok {
			return fmt.Errorf("descriptor %s: %s must be an integer", name, DataTypeKey)
		}
		n := int(tag)
		d.DataType = &n
	}
	return nil
}

// Encode serializes the descriptor to the text form handed to the transport.
func (d *Descriptor) Encode() (string, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseDescriptor decodes a transport message. Frame signals are not
// descriptors; check IsFrameSignal first.
func ParseDescriptor(msg string) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal([]byte(msg), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// IsFrameSignal reports whether a transport message is a bare frame signal.
func IsFrameSignal(msg string) bool {
	return msg == FrameBegin || msg == FrameEnd
}

// StringResult wraps a textual sync result so it survives JSON round trips
// without double-escaping ambiguity.
func StringResult(s string) Object {
	return Object{ResultStringKey: String(s)}
}

// EncodeReply serializes a sync reply.
func EncodeReply(v Value) (string, error) {
	data, err := MarshalValue(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeReply parses a sync reply. A structure carrying ResultStringKey is
// unwrapped to a plain String; anything else is returned as decoded.
func DecodeReply(reply string) (Value, error) {
	if reply == "" {
		return nil, fmt.Errorf("empty reply")
	}
	v, err := UnmarshalValue([]byte(reply))
	if err != nil {
		return nil, fmt.Errorf("malformed reply: %w", err)
	}
	if obj, ok := v.(Object); ok {
		if s, ok := obj[ResultStringKey]; ok {
			str, ok := s.(String)
			if !ok {
				return nil, fmt.Errorf("malformed reply: %s is %T, not a string", ResultStringKey, s)
			}
			return str, nil
		}
	}
	return v, nil
}
