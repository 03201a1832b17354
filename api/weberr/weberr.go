// Package weberr decorates errors with behaviors the middleware layer knows
// how to extract: a response body with a status code, and structured log
// fields. Handlers return plain errors; nothing here writes to the wire.
package weberr

// Opt attaches one behavior to an error.
type Opt func(error) error

// Wrap decorates err with the given behaviors without losing the chain.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse makes the error render body with the given status code.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches fields for the logging middleware to pick up.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
