// Package taskrpc declares the taskio.TaskService gRPC contract: message
// types, the service descriptor, a client stub and the JSON codec the
// messages travel with.
package taskrpc

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype negotiated by client and server
// (content-type "application/grpc+json").
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec for a call. NewTaskServiceClient adds it
// to every call; it is exported for dialers that set it as a default.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
