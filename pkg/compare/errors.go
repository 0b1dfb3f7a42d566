package compare

import (
	"fmt"
	"strings"
)

// UnknownComparatorError lists comparator names that have no
// implementation.
type UnknownComparatorError []string

func (e UnknownComparatorError) Error() string {
	return fmt.Sprintf("unknown comparators, using %q instead: %s", Never, strings.Join(e, ", "))
}
