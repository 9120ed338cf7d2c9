package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"footballers-server/config"
)

// ErrUnknownMessage is returned when an envelope carries a type tag no
// message variant is registered for.
var ErrUnknownMessage = errors.New("unknown message type")

// Codec turns messages into websocket frames and back.
type Codec interface {
	Name() string
	// FrameType is the websocket message type frames are written with.
	FrameType() int
	Encode(Message) ([]byte, error)
	Decode([]byte) (Message, error)
}

// NewCodec returns the codec registered under name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case config.CodecJSON, "":
		return JSON, nil
	case config.CodecMsgpack:
		return Msgpack, nil
	}
	return nil, fmt.Errorf("unsupported codec %q", name)
}

var (
	// JSON frames messages as text, {"type": ..., "data": {...}}.
	JSON Codec = jsonCodec{}
	// Msgpack frames messages as binary envelopes with a nested payload.
	Msgpack Codec = msgpackCodec{}
)

type unmarshalFunc func([]byte, any) error

func decodeAs[T Message](unmarshal unmarshalFunc, data []byte) (Message, error) {
	var m T
	if err := unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

var decoders = map[string]func(unmarshalFunc, []byte) (Message, error){
	TypeInit:        decodeAs[Init],
	TypeStateUpdate: decodeAs[StateUpdate],
	TypeGoalScored:  decodeAs[GoalScored],
	TypeMatchEnded:  decodeAs[MatchEnded],
	TypePlayerInput: decodeAs[PlayerInput],
}

func decodePayload(unmarshal unmarshalFunc, t string, data []byte) (Message, error) {
	decode, ok := decoders[t]
	if !ok {
		return nil, fmt.Errorf("decode %q: %w", t, ErrUnknownMessage)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload for type %q", t)
	}
	m, err := decode(unmarshal, data)
	if err != nil {
		return nil, fmt.Errorf("decode %q payload: %w", t, err)
	}
	return m, nil
}

type jsonEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string   { return config.CodecJSON }
func (jsonCodec) FrameType() int { return websocket.TextMessage }

func (jsonCodec) Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("trying to encode nil message")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", m.Type(), err)
	}
	return json.Marshal(jsonEnvelope{Type: m.Type(), Data: data})
}

func (jsonCodec) Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, errors.New("decode envelope: empty frame")
	}
	var env jsonEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return decodePayload(json.Unmarshal, env.Type, env.Data)
}

type msgpackEnvelope struct {
	Type string `msgpack:"type"`
	Data []byte `msgpack:"data"`
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string   { return config.CodecMsgpack }
func (msgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("trying to encode nil message")
	}
	data, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", m.Type(), err)
	}
	return msgpack.Marshal(&msgpackEnvelope{Type: m.Type(), Data: data})
}

func (msgpackCodec) Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, errors.New("decode envelope: empty frame")
	}
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return decodePayload(msgpack.Unmarshal, env.Type, env.Data)
}
