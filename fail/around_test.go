package fail_test

import (
	"errors"
	"testing"

	"github.com/spdxbridge/sdg/fail"
	"github.com/spdxbridge/sdg/hamlet"
)

func failingStep(trigger bool) (err error) {
	defer fail.Around(&err)

	fail.On(trigger, "triggered failure %d", 42)
	return nil
}

func fastStep(err error) (out error) {
	defer fail.Around(&out)

	fail.Fast(err)
	return nil
}

func TestAroundConvertsPanicsToErrors(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	must_be.Nil(failingStep(false))
	err := failingStep(true)
	wont_be.Nil(err)
	must_be.Equal("triggered failure 42", err.Error())
}

func TestFastPassesUnderlyingError(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	must_be.Nil(fastStep(nil))
	err := fastStep(errors.New("broken pipe"))
	wont_be.Nil(err)
	must_be.Equal("broken pipe", err.Error())
}

func TestForeignPanicsAreNotSwallowed(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Panic(func() {
		var err error
		defer fail.Around(&err)
		panic("not a fail.Detail")
	})
}
