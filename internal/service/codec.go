package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec carries plain Go structs over Connect as JSON. It replaces the
// built-in "json" codec, which only handles protobuf messages.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
