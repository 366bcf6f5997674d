package activity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidActivity is returned when an inbound activity is missing required
// fields.
var ErrInvalidActivity = errors.New("invalid activity")

var validate = validator.New()

// Validate checks that an inbound activity carries the fields the adapter
// relies on to route the turn and address replies.
func Validate(a *Activity) error {
	if a == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidActivity)
	}
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
			}
			return fmt.Errorf("%w: %s", ErrInvalidActivity, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidActivity, err)
	}
	return nil
}
