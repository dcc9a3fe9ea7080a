package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPCError converts err to a status error. Status errors pass through;
// an *Error keeps its code and its message chain; anything else is Internal.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if As(err, &e) {
		return status.Error(e.Code.GRPCCode(), messageChain(e))
	}
	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError converts a status error back into an *Error. Other errors
// are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return New(codeFromGRPC(st.Code()), st.Message())
}

// messageChain joins the messages of nested errors without their code prefixes,
// e.g. "invalid config: validation failed: Name: is required"
func messageChain(e *Error) string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + GetMessage(e.Cause)
}
