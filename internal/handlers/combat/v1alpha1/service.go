package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/dm-api/internal/pkg/jsoncodec"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dmapi.combat.v1alpha1.CombatService"

// CombatServiceServer is the server API for the combat service
type CombatServiceServer interface {
	CreateCombat(context.Context, *CreateCombatRequest) (*CombatResponse, error)
	GetCombat(context.Context, *CombatRequest) (*CombatResponse, error)
	ListSessionCombats(context.Context, *ListSessionCombatsRequest) (*ListSessionCombatsResponse, error)
	DeleteCombat(context.Context, *CombatRequest) (*DeleteCombatResponse, error)
	AddCombatant(context.Context, *AddCombatantRequest) (*AddCombatantResponse, error)
	RemoveCombatant(context.Context, *CombatantRequest) (*CombatResponse, error)
	StartCombat(context.Context, *CombatRequest) (*CombatResponse, error)
	NextTurn(context.Context, *CombatRequest) (*NextTurnResponse, error)
	ApplyDamage(context.Context, *AmountRequest) (*DamageResponse, error)
	ApplyHealing(context.Context, *AmountRequest) (*HealResponse, error)
	AddCondition(context.Context, *ConditionRequest) (*CombatantResponse, error)
	RemoveCondition(context.Context, *ConditionRequest) (*CombatantResponse, error)
	RecordDeathSave(context.Context, *DeathSaveRequest) (*CombatantResponse, error)
	SetDead(context.Context, *SetDeadRequest) (*CombatantResponse, error)
	PauseCombat(context.Context, *CombatRequest) (*CombatResponse, error)
	ResumeCombat(context.Context, *CombatRequest) (*CombatResponse, error)
	EndCombat(context.Context, *CombatRequest) (*CombatResponse, error)
	GetSummary(context.Context, *CombatRequest) (*SummaryResponse, error)
}

// ServiceDesc describes the combat service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CombatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		jsoncodec.Unary(ServiceName, "CreateCombat", CombatServiceServer.CreateCombat),
		jsoncodec.Unary(ServiceName, "GetCombat", CombatServiceServer.GetCombat),
		jsoncodec.Unary(ServiceName, "ListSessionCombats", CombatServiceServer.ListSessionCombats),
		jsoncodec.Unary(ServiceName, "DeleteCombat", CombatServiceServer.DeleteCombat),
		jsoncodec.Unary(ServiceName, "AddCombatant", CombatServiceServer.AddCombatant),
		jsoncodec.Unary(ServiceName, "RemoveCombatant", CombatServiceServer.RemoveCombatant),
		jsoncodec.Unary(ServiceName, "StartCombat", CombatServiceServer.StartCombat),
		jsoncodec.Unary(ServiceName, "NextTurn", CombatServiceServer.NextTurn),
		jsoncodec.Unary(ServiceName, "ApplyDamage", CombatServiceServer.ApplyDamage),
		jsoncodec.Unary(ServiceName, "ApplyHealing", CombatServiceServer.ApplyHealing),
		jsoncodec.Unary(ServiceName, "AddCondition", CombatServiceServer.AddCondition),
		jsoncodec.Unary(ServiceName, "RemoveCondition", CombatServiceServer.RemoveCondition),
		jsoncodec.Unary(ServiceName, "RecordDeathSave", CombatServiceServer.RecordDeathSave),
		jsoncodec.Unary(ServiceName, "SetDead", CombatServiceServer.SetDead),
		jsoncodec.Unary(ServiceName, "PauseCombat", CombatServiceServer.PauseCombat),
		jsoncodec.Unary(ServiceName, "ResumeCombat", CombatServiceServer.ResumeCombat),
		jsoncodec.Unary(ServiceName, "EndCombat", CombatServiceServer.EndCombat),
		jsoncodec.Unary(ServiceName, "GetSummary", CombatServiceServer.GetSummary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dmapi/combat/v1alpha1/combat.json",
}

// RegisterCombatServiceServer registers srv with s
func RegisterCombatServiceServer(s grpc.ServiceRegistrar, srv CombatServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the combat service over a JSON-coded connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) CreateCombat(ctx context.Context, req *CreateCombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "CreateCombat", req, opts...)
}

func (c *Client) GetCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "GetCombat", req, opts...)
}

func (c *Client) ListSessionCombats(ctx context.Context, req *ListSessionCombatsRequest, opts ...grpc.CallOption) (*ListSessionCombatsResponse, error) {
	return jsoncodec.Invoke[ListSessionCombatsResponse](ctx, c.conn, ServiceName, "ListSessionCombats", req, opts...)
}

func (c *Client) DeleteCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*DeleteCombatResponse, error) {
	return jsoncodec.Invoke[DeleteCombatResponse](ctx, c.conn, ServiceName, "DeleteCombat", req, opts...)
}

func (c *Client) AddCombatant(ctx context.Context, req *AddCombatantRequest, opts ...grpc.CallOption) (*AddCombatantResponse, error) {
	return jsoncodec.Invoke[AddCombatantResponse](ctx, c.conn, ServiceName, "AddCombatant", req, opts...)
}

func (c *Client) RemoveCombatant(ctx context.Context, req *CombatantRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "RemoveCombatant", req, opts...)
}

func (c *Client) StartCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "StartCombat", req, opts...)
}

func (c *Client) NextTurn(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*NextTurnResponse, error) {
	return jsoncodec.Invoke[NextTurnResponse](ctx, c.conn, ServiceName, "NextTurn", req, opts...)
}

func (c *Client) ApplyDamage(ctx context.Context, req *AmountRequest, opts ...grpc.CallOption) (*DamageResponse, error) {
	return jsoncodec.Invoke[DamageResponse](ctx, c.conn, ServiceName, "ApplyDamage", req, opts...)
}

func (c *Client) ApplyHealing(ctx context.Context, req *AmountRequest, opts ...grpc.CallOption) (*HealResponse, error) {
	return jsoncodec.Invoke[HealResponse](ctx, c.conn, ServiceName, "ApplyHealing", req, opts...)
}

func (c *Client) AddCondition(ctx context.Context, req *ConditionRequest, opts ...grpc.CallOption) (*CombatantResponse, error) {
	return jsoncodec.Invoke[CombatantResponse](ctx, c.conn, ServiceName, "AddCondition", req, opts...)
}

func (c *Client) RemoveCondition(ctx context.Context, req *ConditionRequest, opts ...grpc.CallOption) (*CombatantResponse, error) {
	return jsoncodec.Invoke[CombatantResponse](ctx, c.conn, ServiceName, "RemoveCondition", req, opts...)
}

func (c *Client) RecordDeathSave(ctx context.Context, req *DeathSaveRequest, opts ...grpc.CallOption) (*CombatantResponse, error) {
	return jsoncodec.Invoke[CombatantResponse](ctx, c.conn, ServiceName, "RecordDeathSave", req, opts...)
}

func (c *Client) SetDead(ctx context.Context, req *SetDeadRequest, opts ...grpc.CallOption) (*CombatantResponse, error) {
	return jsoncodec.Invoke[CombatantResponse](ctx, c.conn, ServiceName, "SetDead", req, opts...)
}

func (c *Client) PauseCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "PauseCombat", req, opts...)
}

func (c *Client) ResumeCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "ResumeCombat", req, opts...)
}

func (c *Client) EndCombat(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return jsoncodec.Invoke[CombatResponse](ctx, c.conn, ServiceName, "EndCombat", req, opts...)
}

func (c *Client) GetSummary(ctx context.Context, req *CombatRequest, opts ...grpc.CallOption) (*SummaryResponse, error) {
	return jsoncodec.Invoke[SummaryResponse](ctx, c.conn, ServiceName, "GetSummary", req, opts...)
}
