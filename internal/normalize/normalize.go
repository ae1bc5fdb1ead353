package normalize

import (
	"errors"
	"fmt"

	"github.com/roach88/glbridge/internal/ir"
)

// Draft is the descriptor-side view of one call.
type Draft struct {
	Name     string
	Args     []any
	DataType *int
}

// NewDraft copies args so hooks can substitute elements freely.
func NewDraft(name string, args []any) *Draft {
	cp := make([]any, len(args))
	copy(cp, args)
	return &Draft{Name: name, Args: cp}
}

// Hook rewrites a draft before it is serialized. A hook that cannot encode
// an argument returns an unsupported-payload error.
type Hook func(d *Draft) error

// Descriptor converts the draft into a wire descriptor.
func (d *Draft) Descriptor() (*ir.Descriptor, error) {
	args := make(ir.Array, len(d.Args))
	for i, a := range d.Args {
		v, err := ir.FromGo(a)
		if err != nil {
			var e *ir.Error
			if errors.As(err, &e) {
				c := e.WithCall(d.Name)
				c.Message = fmt.Sprintf("arg %d: %s", i, c.Message)
				return nil, c
			}
			return nil, ir.NewUnsupportedPayloadError(d.Name, fmt.Sprintf("arg %d: %v", i, err))
		}
		args[i] = v
	}
	desc := ir.NewDescriptor(d.Name, args)
	if d.DataType != nil {
		desc.WithDataType(*d.DataType)
	}
	return desc, nil
}
