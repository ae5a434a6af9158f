package catalog

import "errors"

// ErrInvalidCategory indicates a category without a name was added.
var ErrInvalidCategory = errors.New("catalog.invalid_category")
