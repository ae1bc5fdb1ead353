package calls

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/glbridge/internal/gl"
)

// Config overrides the default classification. It is written in CUE:
//
//	suppressed: ["clear", "clearColor", "viewport"]
//	sync: ["getError"]
//	async: ["getExtension"]
//	create: {createQuery: "unknown"}
//
// All fields are optional.
type Config struct {
	Suppressed []Name
	Sync       []Name
	Async      []Name
	Create     map[Name]gl.Kind
}

var configFields = map[string]bool{
	"suppressed": true,
	"sync":       true,
	"async":      true,
	"create":     true,
}

// LoadConfig reads, compiles and validates a CUE classification file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	cfg, err := CompileConfig(v)
	if err != nil {
		return nil, err
	}
	if verrs := Validate(cfg); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = e
		}
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}

// CompileConfig parses a CUE value into a Config.
// It checks structure only; use Validate for cross-field rules.
func CompileConfig(v cue.Value) (*Config, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		if !configFields[iter.Label()] {
			return nil, &CompileError{
				Field:   iter.Label(),
				Message: "unknown field",
				Pos:     iter.Value().Pos(),
			}
		}
	}

	cfg := &Config{}
	if cfg.Suppressed, err = parseNames(v, "suppressed"); err != nil {
		return nil, err
	}
	if cfg.Sync, err = parseNames(v, "sync"); err != nil {
		return nil, err
	}
	if cfg.Async, err = parseNames(v, "async"); err != nil {
		return nil, err
	}
	if cfg.Create, err = parseCreate(v); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseNames(v cue.Value, field string) ([]Name, error) {
	list := v.LookupPath(cue.ParsePath(field))
	if !list.Exists() {
		return nil, nil
	}
	iter, err := list.List()
	if err != nil {
		return nil, &CompileError{Field: field, Message: "must be a list of call names", Pos: list.Pos()}
	}

	var names []Name
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Field: field, Message: "call names must be strings", Pos: iter.Value().Pos()}
		}
		names = append(names, Name(s))
	}
	return names, nil
}

func parseCreate(v cue.Value) (map[Name]gl.Kind, error) {
	createVal := v.LookupPath(cue.ParsePath("create"))
	if !createVal.Exists() {
		return nil, nil
	}
	iter, err := createVal.Fields()
	if err != nil {
		return nil, &CompileError{Field: "create", Message: "must map call names to handle kinds", Pos: createVal.Pos()}
	}

	out := make(map[Name]gl.Kind)
	for iter.Next() {
		name := iter.Label()
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Field: "create." + name, Message: "handle kind must be a string", Pos: iter.Value().Pos()}
		}
		kind, ok := gl.ParseKind(s)
		if !ok && s != gl.KindUnknown.String() {
			return nil, &CompileError{
				Field:   "create." + name,
				Message: fmt.Sprintf("unknown handle kind %q", s),
				Pos:     iter.Value().Pos(),
			}
		}
		out[Name(name)] = kind
	}
	return out, nil
}

// Validation error codes.
const (
	ErrEmptyName      = "E101" // call name is empty
	ErrDuplicateClass = "E102" // call listed under more than one class
	ErrDuplicateEntry = "E103" // call listed twice under one class
	ErrReservedName   = "E104" // call name collides with a protocol message
)

// ValidationError is a semantic problem in a Config.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// reserved names are protocol messages, never calls.
var reserved = map[Name]bool{
	"configure":  true,
	"startFrame": true,
	"endFrame":   true,
}

// Validate reports every problem in cfg (it does not fail fast).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	seen := make(map[Name]string)

	check := func(field string, name Name) {
		switch {
		case name == "":
			errs = append(errs, ValidationError{Field: field, Message: "call name is empty", Code: ErrEmptyName})
			return
		case reserved[name]:
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is a protocol message, not a call", name),
				Code:    ErrReservedName,
			})
			return
		}
		if prev, ok := seen[name]; ok {
			code, msg := ErrDuplicateClass, fmt.Sprintf("%q is also listed under %s", name, prev)
			if prev == field {
				code, msg = ErrDuplicateEntry, fmt.Sprintf("%q is listed twice", name)
			}
			errs = append(errs, ValidationError{Field: field, Message: msg, Code: code})
			return
		}
		seen[name] = field
	}

	for _, n := range cfg.Suppressed {
		check("suppressed", n)
	}
	for _, n := range cfg.Sync {
		check("sync", n)
	}
	for _, n := range cfg.Async {
		check("async", n)
	}
	created := make([]Name, 0, len(cfg.Create))
	for n := range cfg.Create {
		created = append(created, n)
	}
	slices.Sort(created)
	for _, n := range created {
		check("create", n)
	}
	return errs
}

// CompileError is a structural error with its CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
