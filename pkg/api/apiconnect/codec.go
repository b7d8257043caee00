// Package apiconnect wires the api messages to connect handlers and clients.
//
// Messages are plain Go structs, so both sides use a JSON codec registered
// under the "json" name in place of connect's protobuf-based default.
package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid JSON message: %w", err)
	}
	return nil
}

// handlerOptions puts the JSON codec after the caller's options so it always wins.
func handlerOptions(opts []connect.HandlerOption) connect.HandlerOption {
	return connect.WithHandlerOptions(
		connect.WithHandlerOptions(opts...),
		connect.WithCodec(jsonCodec{}),
	)
}

func clientOptions(opts []connect.ClientOption) connect.ClientOption {
	return connect.WithClientOptions(
		connect.WithCodec(jsonCodec{}),
		connect.WithClientOptions(opts...),
	)
}
