package fail

import (
	"fmt"
)

// Detail is the panic payload used inside multi-step operations. Combined
// with Around it keeps error handling flat: steps assert with On/Fast and
// the deferred Around turns the first failure into a normal error return.
type Detail string

func (it Detail) Error() string {
	return string(it)
}

func Around(err *error) {
	original := recover()
	if original == nil {
		return
	}
	catch, ok := original.(Detail)
	if !ok {
		panic(original)
	}
	*err = catch
}

func On(condition bool, form string, details ...interface{}) {
	if condition {
		panic(Detail(fmt.Sprintf(form, details...)))
	}
}

func Fast(err error) error {
	if err != nil {
		panic(Detail(err.Error()))
	}
	return nil
}
