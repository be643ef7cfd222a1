package apperr

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
)

// Normalize maps an arbitrary failure value onto a canonical Error. It never
// returns nil. Rules are applied in order and the first match wins:
//
//  1. an *Error (or Error, or a Go error wrapping one) that is already well formed is returned as a copy
//  2. an object with category and message fields is coerced, keeping subcategory and context
//  3. a CUSTOM_ERROR wrapper has its error string decoded as JSON; undecodable
//     payloads become Unknown errors carrying the raw string
//  4. anything else becomes an Unknown error; strings and Go errors keep their text
//
// Byte payloads, including those of a Payloader, are decoded as JSON once and
// fed back through the rules.
func Normalize(raw any) *Error {
	switch v := raw.(type) {
	case nil:
		return unknown("")
	case *Error:
		if v == nil {
			return unknown("")
		}
		return fromError(v)
	case Error:
		return fromError(&v)
	case *CommandError:
		if v == nil {
			return unknown("")
		}
		return fromCommand(v)
	case CommandError:
		return fromCommand(&v)
	case json.RawMessage:
		return fromBytes(v)
	case []byte:
		return fromBytes(v)
	case string:
		return unknown(v)
	case map[string]any:
		return fromMap(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return fromMap(m)
	case error:
		var ae *Error
		if errors.As(v, &ae) && ae != nil {
			return fromError(ae)
		}
		var ce *CommandError
		if errors.As(v, &ce) && ce != nil {
			return fromCommand(ce)
		}
		var pl Payloader
		if errors.As(v, &pl) {
			if b := pl.Payload(); len(bytes.TrimSpace(b)) > 0 {
				return fromBytes(b)
			}
		}
		return unknown(v.Error())
	}
	return unknown("")
}

// Payloader is implemented by Go errors that carry a raw rejection body,
// such as a backend response. The payload is normalized like a []byte.
type Payloader interface {
	error
	Payload() []byte
}

func fromError(e *Error) *Error {
	if e.wellFormed() {
		return e.Clone()
	}
	c := e.Clone()
	c.fill()
	return c
}

func fromBytes(b []byte) *Error {
	trimmed := bytes.TrimSpace(b)
	var decoded any
	if len(trimmed) == 0 || json.Unmarshal(trimmed, &decoded) != nil {
		return unknown(string(b))
	}
	return Normalize(decoded)
}

func fromMap(m map[string]any) *Error {
	if e, ok := coerceFields(m); ok {
		return e
	}
	if status, _ := m["status"].(string); status == StatusCustomError {
		if payload, ok := m["error"].(string); ok {
			return fromCustom(payload)
		}
	}
	return unknown("")
}

func fromCommand(ce *CommandError) *Error {
	if ce.Status == StatusCustomError {
		return fromCustom(ce.Err)
	}
	return unknown(ce.Err)
}

// fromCustom decodes the JSON payload of a CUSTOM_ERROR wrapper.
func fromCustom(payload string) *Error {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err == nil {
		if e, ok := coerceFields(decoded); ok {
			return e
		}
	}
	return unknown(payload)
}

// coerceFields builds an Error from an object exposing category and message.
// Severity defaults to Error when absent.
func coerceFields(m map[string]any) (*Error, bool) {
	rawCategory, hasCategory := m["category"]
	rawMessage, hasMessage := m["message"]
	if !hasCategory || !hasMessage {
		return nil, false
	}

	e := &Error{}
	if s, ok := rawCategory.(string); ok {
		e.Category = Category(s)
	}
	if s, ok := rawMessage.(string); ok {
		e.Message = s
	}
	if s, ok := m["severity"].(string); ok {
		e.Severity = Severity(s)
	}
	if s, ok := m["subcategory"].(string); ok {
		e.Subcategory = s
	}
	if ctx, ok := m["context"].(map[string]any); ok {
		e.Context = maps.Clone(ctx)
	}
	e.fill()
	return e, true
}

func unknown(message string) *Error {
	if message == "" {
		message = DefaultMessage
	}
	return &Error{
		Category: CategoryUnknown,
		Severity: SeverityError,
		Message:  message,
	}
}
