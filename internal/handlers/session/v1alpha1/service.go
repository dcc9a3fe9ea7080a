package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/dm-api/internal/pkg/jsoncodec"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dmapi.session.v1alpha1.SessionService"

// SessionServiceServer is the server API for the session service
type SessionServiceServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*SessionResponse, error)
	GetSession(context.Context, *SessionRequest) (*SessionResponse, error)
	DeleteSession(context.Context, *SessionRequest) (*DeleteSessionResponse, error)
	AddChatMessage(context.Context, *AddChatMessageRequest) (*ChatMessageResponse, error)
	RecordAction(context.Context, *RecordActionRequest) (*ActionEntryResponse, error)
	SetPhase(context.Context, *SetPhaseRequest) (*SessionResponse, error)
	StartCombat(context.Context, *StartCombatRequest) (*CombatResponse, error)
	EndCombat(context.Context, *SessionRequest) (*CombatResponse, error)
	GetSessionCombat(context.Context, *SessionRequest) (*CombatResponse, error)
	ApplyDamage(context.Context, *SessionAmountRequest) (*DamageResponse, error)
	ApplyHealing(context.Context, *SessionAmountRequest) (*HealResponse, error)
	NextTurn(context.Context, *SessionRequest) (*NextTurnResponse, error)
	AddCondition(context.Context, *SessionConditionRequest) (*ConditionsResponse, error)
	RemoveCondition(context.Context, *SessionConditionRequest) (*ConditionsResponse, error)
}

// ServiceDesc describes the session service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		jsoncodec.Unary(ServiceName, "CreateSession", SessionServiceServer.CreateSession),
		jsoncodec.Unary(ServiceName, "GetSession", SessionServiceServer.GetSession),
		jsoncodec.Unary(ServiceName, "DeleteSession", SessionServiceServer.DeleteSession),
		jsoncodec.Unary(ServiceName, "AddChatMessage", SessionServiceServer.AddChatMessage),
		jsoncodec.Unary(ServiceName, "RecordAction", SessionServiceServer.RecordAction),
		jsoncodec.Unary(ServiceName, "SetPhase", SessionServiceServer.SetPhase),
		jsoncodec.Unary(ServiceName, "StartCombat", SessionServiceServer.StartCombat),
		jsoncodec.Unary(ServiceName, "EndCombat", SessionServiceServer.EndCombat),
		jsoncodec.Unary(ServiceName, "GetSessionCombat", SessionServiceServer.GetSessionCombat),
		jsoncodec.Unary(ServiceName, "ApplyDamage", SessionServiceServer.ApplyDamage),
		jsoncodec.Unary(ServiceName, "ApplyHealing", SessionServiceServer.ApplyHealing),
		jsoncodec.Unary(ServiceName, "NextTurn", SessionServiceServer.NextTurn),
		jsoncodec.Unary(ServiceName, "AddCondition", SessionServiceServer.AddCondition),
		jsoncodec.Unary(ServiceName, "RemoveCondition", SessionServiceServer.RemoveCondition),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dmapi/session/v1alpha1/session.json",
}

// RegisterSessionServiceServer registers srv with s
func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the session service over a JSON-coded connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return jsoncodec.Invoke[SessionResponse](ctx, c.conn, ServiceName, "CreateSession", req, opts...)
}

func (c *Client) GetSession(ctx context.Context, req *SessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return jsoncodec.Invoke[SessionResponse](ctx, c.conn, ServiceName, "GetSession", req, opts...)
}

func (c *Client) DeleteSession(ctx context.Context, req *SessionRequest, opts ...grpc.CallOption) (*DeleteSessionResponse, error) {
	return jsoncodec.Invoke[DeleteSessionResponse](ctx, c.conn, ServiceName, "DeleteSession", req, opts...)
}

func (c *Client) AddChatMessage(ctx context.Context, req *AddChatMessageRequest, opts ...grpc.CallOption) (*ChatMessageResponse, error) {
	return jsoncodec.Invoke[ChatMessageResponse](ctx, c.conn, ServiceName, "AddChatMessage", req, opts...)
}

func (c *Client) RecordAction(ctx context.Context, req *RecordActionRequest, opts ...grpc.CallOption) (*ActionEntryResponse, error) {
	return jsoncodec.Invoke[ActionEntryResponse](ctx, c.conn, ServiceName, "RecordAction", req, opts...)
}

func (c *Client) SetPhase(ctx context.Context, req *SetPhaseRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return jsoncodec.Invoke[SessionResponse](ctx, c.conn, ServiceName, "SetPhase", req, opts...)
}

func (c *Client) StartCombat(ctx context.Context, req *StartCombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "StartCombat", req, opts...)
}

func (c *Client) EndCombat(ctx context.Context, req *SessionRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "EndCombat", req, opts...)
}

func (c *Client) GetSessionCombat(ctx context.Context, req *SessionRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "GetSessionCombat", req, opts...)
}

func (c *Client) ApplyDamage(ctx context.Context, req *SessionAmountRequest, opts ...grpc.CallOption) (*DamageResponse, error) {
	return jsoncodec.Invoke[DamageResponse](ctx, c.conn, ServiceName, "ApplyDamage", req, opts...)
}

func (c *Client) ApplyHealing(ctx context.Context, req *SessionAmountRequest, opts ...grpc.CallOption) (*HealResponse, error) {
	return jsoncodec.Invoke[HealResponse](ctx, c.conn, ServiceName, "ApplyHealing", req, opts...)
}

func (c *Client) NextTurn(ctx context.Context, req *SessionRequest, opts ...grpc.CallOption) (*NextTurnResponse, error) {
	return jsoncodec.Invoke[NextTurnResponse](ctx, c.conn, ServiceName, "NextTurn", req, opts...)
}

func (c *Client) AddCondition(ctx context.Context, req *SessionConditionRequest, opts ...grpc.CallOption) (*ConditionsResponse, error) {
	return jsoncodec.Invoke[ConditionsResponse](ctx, c.conn, ServiceName, "AddCondition", req, opts...)
}

func (c *Client) RemoveCondition(ctx context.Context, req *SessionConditionRequest, opts ...grpc.CallOption) (*ConditionsResponse, error) {
	return jsoncodec.Invoke[ConditionsResponse](ctx, c.conn, ServiceName, "RemoveCondition", req, opts...)
}
