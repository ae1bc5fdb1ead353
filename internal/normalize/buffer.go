package normalize

import "github.com/roach88/glbridge/internal/ir"

// BufferDataType tags a buffer upload with the element type of its payload
// so the host can rebuild the binary layout. The payload is argument 1 of
// bufferData(target, data, usage). Untyped and nil payloads are left
// untagged; a nil slice serializes as null and carries no elements.
func BufferDataType(d *Draft) error {
	if len(d.Args) < 2 {
		return nil
	}
	var tag int
	switch data := d.Args[1].(type) {
	case []float32:
		if data == nil {
			return nil
		}
		tag = ir.DataTypeFloat
	case []uint16:
		if data == nil {
			return nil
		}
		tag = ir.DataTypeShort
	case []int16:
		if data == nil {
			return nil
		}
		tag = ir.DataTypeShort
	default:
		return nil
	}
	d.DataType = &tag
	return nil
}
