package event

import "encoding/json"

// DecodePayload converts an event payload into T. Payloads published on the
// in-process bus are already the concrete struct, so a type assertion covers
// the common case. Payloads replayed from the dead-letter file arrive as
// generic JSON and go through a marshal round-trip instead.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	if raw, ok := input.(json.RawMessage); ok {
		return result, json.Unmarshal(raw, &result)
	}
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
