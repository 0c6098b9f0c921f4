package domain

import (
	"errors"
	"strconv"
)

// Object is a field mapping as exchanged with the inventory API. Values are
// scalars, nested mappings (map[string]any) or sequences ([]any).
type Object map[string]any

// NotFound returns the sentinel the API reports for a missing object.
func NotFound() Object {
	return Object{KeyDetail: NotFoundDetail}
}

// IsNotFound reports whether o is the not-found sentinel.
func IsNotFound(o Object) bool {
	detail, ok := o[KeyDetail].(string)
	return ok && detail == NotFoundDetail
}

// ObjectRef identifies one object within a Category, either by name or by
// numeric identifier. The two forms cannot be combined.
type ObjectRef interface {
	String() string
	isObjectRef()
}

type ByName string

func (ByName) isObjectRef() {}

func (n ByName) String() string { return "name=" + string(n) }

type ByID int64

func (ByID) isObjectRef() {}

func (i ByID) String() string { return "id=" + strconv.FormatInt(int64(i), 10) }

var ErrAmbiguousRef = errors.New("name and ident are mutually exclusive")

// NewObjectRef builds a reference from the optional name/ident pair of a
// caller. It returns a nil ref when neither is set.
func NewObjectRef(name string, ident *int64) (ObjectRef, error) {
	switch {
	case name != "" && ident != nil:
		return nil, ErrAmbiguousRef
	case name != "":
		return ByName(name), nil
	case ident != nil:
		return ByID(*ident), nil
	default:
		return nil, nil
	}
}

// DesiredSource is where the desired state of an invocation comes from:
// inline data, or a file rendered/decoded by a loader.
type DesiredSource struct {
	Data     any
	Template string
	Vars     map[string]any
}

func (s DesiredSource) IsZero() bool {
	if s.Template != "" {
		return false
	}
	if str, ok := s.Data.(string); ok {
		return str == ""
	}
	return s.Data == nil
}

// Invocation is one reconciliation request.
type Invocation struct {
	Category  Category
	Ref       ObjectRef
	Lifecycle Lifecycle
	Source    DesiredSource
	Check     bool
	Diff      bool
}
