package protocol

import (
	"encoding/json"
	"fmt"
)

// Encode wraps payload in an envelope of the given message type.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty envelope type")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: t, Message: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// DecodePayload unmarshals the envelope's raw payload into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Message) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.Type)
	}
	err := json.Unmarshal(env.Message, &out)
	return out, err
}
