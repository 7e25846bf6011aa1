package form

// Action names a dispatch entry point.
type Action string

const (
	ActionClick  Action = "click"
	ActionSubmit Action = "submit"
)

// Observer receives provider events for metrics collection. err is nil on
// success.
type Observer interface {
	FieldRegistered(key string, err error)
	FieldUpdated(key string, err error)
	FieldValidated(key string, valid bool)
	Dispatched(action Action, err error)
}

type nopObserver struct{}

func (nopObserver) FieldRegistered(string, error) {}
func (nopObserver) FieldUpdated(string, error)    {}
func (nopObserver) FieldValidated(string, bool)   {}
func (nopObserver) Dispatched(Action, error)      {}
