package lifetime

// Dropper is optionally implemented by managed values that need
// cleanup. Drop is called exactly once, when the last owning handle
// releases the value.
type Dropper interface {
	Drop()
}

// DropValue runs v's destructor if it implements Dropper.
func DropValue(v any) {
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
}
