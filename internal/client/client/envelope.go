package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// decodeObject parses a 2xx body as a JSON object. An envelope reporting
// status "error" is rejected.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: "response is not a JSON object", Err: err}
	}
	if env == nil {
		return nil, malformed("response is null")
	}

	if envelopeStatus(env) == statusError {
		return nil, malformed("backend reported an error: %s", errorMessage(raw, 0))
	}
	return env, nil
}

func envelopeStatus(env map[string]json.RawMessage) string {
	var s string
	if st, ok := env["status"]; ok {
		_ = json.Unmarshal(st, &s)
	}
	return s
}

// decodeList unwraps {<key>: [...]}. The result is never nil.
func decodeList[T any](raw []byte, key string) ([]T, error) {
	env, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	field, ok := env[key]
	if !ok {
		return nil, malformed("missing %q", key)
	}
	return decodeArray[T](field, key)
}

// decodeDirectList decodes a body that is a bare JSON array.
func decodeDirectList[T any](raw []byte) ([]T, error) {
	return decodeArray[T](raw, "response")
}

func decodeArray[T any](field []byte, name string) ([]T, error) {
	if !isJSONKind(field, '[') {
		return nil, malformed("%s is not an array", name)
	}

	out := make([]T, 0)
	if err := json.Unmarshal(field, &out); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: fmt.Sprintf("decode %s", name), Err: err}
	}
	return out, nil
}

// decodeItem unwraps {status, <key>: {...}} or accepts a direct object that
// carries an "id".
func decodeItem[T any](raw []byte, key string) (*T, error) {
	env, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	src := raw
	if field, ok := env[key]; ok {
		if !isJSONKind(field, '{') {
			return nil, malformed("%q is not an object", key)
		}
		src = field
	} else if _, ok := env["id"]; !ok {
		return nil, malformed("expected %q or an object with an id", key)
	}

	var v T
	if err := json.Unmarshal(src, &v); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: fmt.Sprintf("decode %s", key), Err: err}
	}
	return &v, nil
}

// checkAck accepts an empty body or any non-error JSON object.
func checkAck(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	_, err := decodeObject(raw)
	return err
}

func decodeMap(raw []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: "response is not a JSON object", Err: err}
	}
	return m, nil
}

func isJSONKind(raw []byte, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}
