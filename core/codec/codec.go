// Package codec encodes the serving stats snapshot for the /stats
// route, negotiated by the request's Accept header.
package codec

import (
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ErrUnsupportedCodec marks a codec lookup that matched nothing.
var ErrUnsupportedCodec = errors.New("unsupported codec")

// Codec is the encoding interface shared by the stats formats.
type Codec interface {
	// Encode encodes a value to bytes.
	Encode(v interface{}) ([]byte, error)

	// Decode decodes bytes into a value.
	Decode(data []byte, v interface{}) error

	// Name returns the codec name.
	Name() string

	// ContentType returns the HTTP content type emitted by this codec.
	ContentType() string
}

// JSONCodec encodes proto messages with protojson and everything else
// with encoding/json.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v interface{}) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return protojson.Marshal(msg)
	}
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v interface{}) error {
	if msg, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, msg)
	}
	return json.Unmarshal(data, v)
}

func (c *JSONCodec) Name() string {
	return "json"
}

func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// ForAccept picks a codec from an Accept header value. JSON is the
// default.
func ForAccept(accept string) Codec {
	if strings.Contains(accept, "application/x-protobuf") || strings.Contains(accept, "application/protobuf") {
		return &ProtobufCodec{}
	}
	return &JSONCodec{}
}
