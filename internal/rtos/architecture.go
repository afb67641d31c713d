package rtos

// Architecture identifies a target architecture for which a module can be
// generated. Values are built once at configuration time and treated as
// immutable.
type Architecture struct {
	Name   string
	Config map[string]any
}
