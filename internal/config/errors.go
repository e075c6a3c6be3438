package config

import "fmt"

type validationError struct {
	flag   string
	reason string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %s", e.flag, e.reason)
}

func errRequired(flag string) error {
	return &validationError{flag: flag, reason: "required"}
}

func errInvalid(flag, reason string) error {
	return &validationError{flag: flag, reason: reason}
}
