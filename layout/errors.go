package layout

import (
	"fmt"

	"github.com/wippyai/zdef/errors"
)

func overflowError(field int) *errors.Error {
	return &errors.Error{
		Phase:  errors.PhaseLayout,
		Kind:   errors.KindOverflow,
		Detail: fmt.Sprintf("struct size overflows 32 bits at field %d", field),
		Value:  field,
	}
}
