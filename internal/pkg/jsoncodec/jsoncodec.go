// Package jsoncodec carries plain JSON-tagged Go structs over gRPC.
//
// Importing the package registers the codec under the "json" content
// subtype. Clients opt in per call with CallOption; servers pick the codec
// from the request's content type.
package jsoncodec

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/KirkDiggler/dm-api/internal/errors"
)

// Name is the codec name and the gRPC content subtype
const Name = "json"

// Codec implements encoding.Codec with encoding/json
type Codec struct{}

var _ encoding.Codec = Codec{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Marshal encodes v as JSON
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	return data, nil
}

// Unmarshal decodes JSON into v. An empty payload leaves v at its zero value.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to unmarshal message")
	}
	return nil
}

// Name returns the registered codec name
func (Codec) Name() string {
	return Name
}

// CallOption selects the JSON codec for a client call
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

// Unary builds a method descriptor for a unary RPC whose request and response
// are JSON-tagged structs. S is the service implementation type.
func Unary[S any, Req any, Resp any](serviceName, method string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + method

	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke calls a unary method with the JSON codec
func Invoke[Resp any](ctx context.Context, conn grpc.ClientConnInterface, serviceName, method string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(opts, CallOption())
	if err := conn.Invoke(ctx, "/"+serviceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
