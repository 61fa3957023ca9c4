// Package errs contiene los errores sentinela compartidos por los adapters de storage.
package errs

import "errors"

var (
	// ErrNotFound indica que la entidad pedida no existe.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indica violación de unicidad (id o token repetido).
	ErrAlreadyExists = errors.New("already exists")
)
