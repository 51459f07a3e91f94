package config

import "fmt"

type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}

func initErrorf(format string, args ...any) *ConfigInitError {
	return &ConfigInitError{msg: fmt.Sprintf(format, args...)}
}
