package httperr

import "errors"

// BusinessError is a rule violation the client can act on. Code is stable
// and returned as error_code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// CodeOf unwraps err looking for a BusinessError.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

func IsBusiness(err error, code string) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
