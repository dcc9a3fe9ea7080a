package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an error. The string form is what Error() prints.
type Code string

const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

type mapping struct {
	grpc codes.Code
	http int
}

// FailedPrecondition is the engine's invalid-state kind. It maps to 400 so
// callers see a client error they can fix by changing combat state.
var mappings = map[Code]mapping{
	CodeOK:                 {codes.OK, http.StatusOK},
	CodeCanceled:           {codes.Canceled, http.StatusRequestTimeout},
	CodeInvalidArgument:    {codes.InvalidArgument, http.StatusBadRequest},
	CodeNotFound:           {codes.NotFound, http.StatusNotFound},
	CodeAlreadyExists:      {codes.AlreadyExists, http.StatusConflict},
	CodeFailedPrecondition: {codes.FailedPrecondition, http.StatusBadRequest},
	CodeUnimplemented:      {codes.Unimplemented, http.StatusNotImplemented},
	CodeInternal:           {codes.Internal, http.StatusInternalServerError},
	CodeUnavailable:        {codes.Unavailable, http.StatusServiceUnavailable},
}

func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the gRPC status code; unknown codes map to Unknown
func (c Code) GRPCCode() codes.Code {
	if m, ok := mappings[c]; ok {
		return m.grpc
	}
	return codes.Unknown
}

// HTTPStatus returns the HTTP status; unknown codes map to 500
func (c Code) HTTPStatus() int {
	if m, ok := mappings[c]; ok {
		return m.http
	}
	return http.StatusInternalServerError
}

// codeFromGRPC is the reverse of GRPCCode. Anything without a match is Internal.
func codeFromGRPC(gc codes.Code) Code {
	for code, m := range mappings {
		if m.grpc == gc {
			return code
		}
	}
	return CodeInternal
}
