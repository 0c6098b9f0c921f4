package domain

import "fmt"

// Category selects an object schema within the inventory API, e.g. dcim/sites.
type Category struct {
	Model string
	Obj   string
}

func (c Category) String() string {
	return fmt.Sprintf("%s/%s", c.Model, c.Obj)
}

func (c Category) IsZero() bool {
	return c.Model == "" || c.Obj == ""
}

type Lifecycle string

const (
	LifecyclePresent Lifecycle = "present"
	LifecycleAbsent  Lifecycle = "absent"
)

func (l Lifecycle) Valid() bool {
	return l == LifecyclePresent || l == LifecycleAbsent
}

func (l Lifecycle) String() string {
	return string(l)
}

// Action is the single remote mutation an invocation performs, if any.
type Action string

const (
	ActionNone   Action = "none"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) Mutates() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Kinds of desired state sources, used to pick a loader.
const (
	SourceData     = "data"
	SourceTemplate = "template"
	SourceJSON     = "json"
	SourceYAML     = "yaml"
	SourceHCL      = "hcl"
)
