package errors

import "errors"

// Dumped carries the unwrapped error chain for structured logging.
type Dumped struct {
	TopMessage string
	Code       string
	Chain      []string
}

// Dump walks the error chain and collects the data log sinks care about.
func Dump(err error) Dumped {
	out := Dumped{}
	if err == nil {
		return out
	}
	out.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		out.Code = string(typed.Code())
	}
	for current := err; current != nil; current = errors.Unwrap(current) {
		out.Chain = append(out.Chain, current.Error())
	}
	return out
}
