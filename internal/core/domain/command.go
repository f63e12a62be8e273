package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args holds parameter values bound to a command's declared schema.
type Args map[string]any

func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// ValidationError describes a parameter that could not be bound.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// maxSafeInteger is the largest integer platforms delivering JSON numbers can represent exactly.
const maxSafeInteger = 1<<53 - 1

// Bind matches the raw values of an invocation against the declared parameters.
// Named options win; remaining parameters are filled positionally from the
// invocation text, where a trailing string parameter consumes the rest of it.
func Bind(params []ParamSpec, inv *Invocation) (Args, error) {
	args := make(Args, len(params))

	declared := make(map[string]struct{}, len(params))
	for _, p := range params {
		declared[p.Name] = struct{}{}
	}

	for name := range inv.Options {
		if _, ok := declared[name]; !ok {
			return nil, &ValidationError{Param: name, Reason: "unknown parameter"}
		}
	}

	tokens := strings.Fields(inv.Text)

	for i, p := range params {
		raw, ok := inv.Options[p.Name]

		if !ok && len(tokens) > 0 {
			if p.Type == String && i == len(params)-1 {
				raw = strings.Join(tokens, " ")
				tokens = nil
			} else {
				raw = tokens[0]
				tokens = tokens[1:]
			}
			ok = true
		}

		if !ok {
			if p.Required {
				return nil, &ValidationError{Param: p.Name, Reason: "missing required parameter"}
			}
			continue
		}

		v, err := convert(p, raw)
		if err != nil {
			return nil, err
		}

		if s, isString := v.(string); isString && s == "" {
			if p.Required {
				return nil, &ValidationError{Param: p.Name, Reason: "missing required parameter"}
			}
			continue
		}

		args[p.Name] = v
	}

	if len(tokens) > 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("unexpected argument %q", tokens[0])}
	}

	return args, nil
}

func convert(p ParamSpec, raw any) (any, error) {
	switch p.Type {
	case Integer:
		return toInteger(p.Name, raw)
	case String:
		switch v := raw.(type) {
		case string:
			return strings.TrimSpace(v), nil
		case fmt.Stringer:
			return strings.TrimSpace(v.String()), nil
		default:
			return nil, &ValidationError{Param: p.Name, Reason: "must be text"}
		}
	default:
		return nil, &ValidationError{Param: p.Name, Reason: fmt.Sprintf("unsupported type %q", p.Type)}
	}
}

func toInteger(name string, raw any) (int64, error) {
	mismatch := &ValidationError{Param: name, Reason: "must be an integer"}

	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) > maxSafeInteger {
			return 0, mismatch
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, mismatch
		}
		n = parsed
	default:
		return 0, mismatch
	}

	if n > maxSafeInteger || n < -maxSafeInteger {
		return 0, &ValidationError{Param: name, Reason: "is out of range"}
	}

	return n, nil
}

// ParseCommand returns the lower-cased command name of a text message, without
// a leading slash or a trailing @botname suffix.
func ParseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	cmd := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}

	return strings.ToLower(cmd)
}

// CommandTarget returns the bot name a text command is addressed to, as in
// /ping@mybot, or an empty string when the command has no @botname suffix.
func CommandTarget(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	_, target, _ := strings.Cut(fields[0], "@")
	return target
}

// ParseCommandArgs returns everything after the first word of a text message.
func ParseCommandArgs(text string) string {
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, " \t\n")
	if i < 0 {
		return ""
	}

	return strings.TrimSpace(text[i+1:])
}
