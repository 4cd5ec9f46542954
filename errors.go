package rivet

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeDuplicateRegistration
	ErrCodeAmbiguousDependency
	ErrCodeMissingDependency
	ErrCodeUntypedParameter
	ErrCodeInvalidProvider
	ErrCodeCircularDependency
	ErrCodeProviderFailed
	ErrCodeOverrideMismatch
	ErrCodeConfigKeyMissing
	ErrCodeConfigTypeMismatch
	ErrCodeConfigKeyCollision
	ErrCodeConfigLoadFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:               "UNKNOWN",
	ErrCodeDuplicateRegistration: "DUPLICATE_REGISTRATION",
	ErrCodeAmbiguousDependency:   "AMBIGUOUS_DEPENDENCY",
	ErrCodeMissingDependency:     "MISSING_DEPENDENCY",
	ErrCodeUntypedParameter:      "UNTYPED_PARAMETER",
	ErrCodeInvalidProvider:       "INVALID_PROVIDER",
	ErrCodeCircularDependency:    "CIRCULAR_DEPENDENCY",
	ErrCodeProviderFailed:        "PROVIDER_FAILED",
	ErrCodeOverrideMismatch:      "OVERRIDE_MISMATCH",
	ErrCodeConfigKeyMissing:      "CONFIG_KEY_MISSING",
	ErrCodeConfigTypeMismatch:    "CONFIG_TYPE_MISMATCH",
	ErrCodeConfigKeyCollision:    "CONFIG_KEY_COLLISION",
	ErrCodeConfigLoadFailed:      "CONFIG_LOAD_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the failure type for every registration, assembly, and
// configuration operation. Component names the type being registered
// or assembled; Chain is the resolution path that led to the failure.
type Error struct {
	Code      ErrorCode
	Message   string
	Component string
	Chain     []string
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Component != "" {
		b.WriteString(fmt.Sprintf(" component=%q:", e.Component))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if len(e.Chain) > 0 {
		b.WriteString(" (via ")
		b.WriteString(strings.Join(e.Chain, " -> "))
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

func (e *Error) WithChain(chain []string) *Error {
	e.Chain = append([]string(nil), chain...)
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errDuplicateRegistration(key string) *Error {
	return newError(
		ErrCodeDuplicateRegistration,
		fmt.Sprintf("%s already registered under an overlapping profile set", key),
		nil,
	).WithComponent(key)
}

func errAmbiguousDependency(key string, candidates []string) *Error {
	return newError(
		ErrCodeAmbiguousDependency,
		fmt.Sprintf("%d providers match %s: %s", len(candidates), key, strings.Join(candidates, ", ")),
		nil,
	).WithComponent(key)
}

func errMissingDependency(param, owner string) *Error {
	return newError(
		ErrCodeMissingDependency,
		fmt.Sprintf("no override, provider, setting, or default for parameter %q of %s", param, owner),
		nil,
	).WithComponent(owner)
}

func errUntypedParameter(param, owner string) *Error {
	return newError(
		ErrCodeUntypedParameter,
		fmt.Sprintf("parameter %q of %s has no usable type; injection cannot proceed", param, owner),
		nil,
	).WithComponent(owner)
}

func errInvalidProvider(key, reason string) *Error {
	return newError(
		ErrCodeInvalidProvider,
		fmt.Sprintf("cannot register %s: %s", key, reason),
		nil,
	).WithComponent(key)
}

func errCircularDependency(chain []string) *Error {
	return newError(
		ErrCodeCircularDependency,
		fmt.Sprintf("circular dependency: %s", strings.Join(chain, " -> ")),
		nil,
	).WithChain(chain)
}

func errProviderFailed(key string, cause error) *Error {
	return newError(
		ErrCodeProviderFailed,
		fmt.Sprintf("provider for %s returned an error", key),
		cause,
	).WithComponent(key)
}

func errOverrideMismatch(param, owner string, got, want string) *Error {
	return newError(
		ErrCodeOverrideMismatch,
		fmt.Sprintf("override for parameter %q of %s has type %s, want %s", param, owner, got, want),
		nil,
	).WithComponent(owner)
}

func errUnknownOverride(param, owner string) *Error {
	return newError(
		ErrCodeOverrideMismatch,
		fmt.Sprintf("override %q matches no parameter of %s", param, owner),
		nil,
	).WithComponent(owner)
}

func errConfigKeyMissing(section, key string) *Error {
	return newError(
		ErrCodeConfigKeyMissing,
		fmt.Sprintf("no value for [%s] %s", section, key),
		nil,
	)
}

func errConfigTypeMismatch(section, key, want string, cause error) *Error {
	return newError(
		ErrCodeConfigTypeMismatch,
		fmt.Sprintf("value for [%s] %s is not a valid %s", section, key, want),
		cause,
	)
}

func errConfigKeyCollision(section, key string) *Error {
	return newError(
		ErrCodeConfigKeyCollision,
		fmt.Sprintf("[%s] %s already present; merge does not overwrite", section, key),
		nil,
	)
}

func errConfigLoadFailed(source string, cause error) *Error {
	return newError(
		ErrCodeConfigLoadFailed,
		fmt.Sprintf("failed to load configuration from %s", source),
		cause,
	)
}

func IsDuplicateRegistration(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDuplicateRegistration
}

func IsAmbiguousDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAmbiguousDependency
}

func IsMissingDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMissingDependency
}

func IsUntypedParameter(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUntypedParameter
}

func IsInvalidProvider(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidProvider
}

func IsCircularDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCircularDependency
}

func IsProviderFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeProviderFailed
}

func IsOverrideMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeOverrideMismatch
}

func IsConfigKeyMissing(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfigKeyMissing
}

func IsConfigTypeMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfigTypeMismatch
}

func IsConfigKeyCollision(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfigKeyCollision
}

func IsConfigLoadFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfigLoadFailed
}
