package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/dm-api/internal/pkg/jsoncodec"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dmapi.dice.v1alpha1.DiceService"

// RollDiceRequest rolls notation into the entity's log for context
type RollDiceRequest struct {
	EntityID            string `json:"entity_id"`
	Context             string `json:"context"`
	Notation            string `json:"notation"`
	ModifierDescription string `json:"modifier_description,omitempty"`
}

// RollDiceResponse returns the new roll and the whole log
type RollDiceResponse struct {
	Roll      *dicesession.DiceRoll  `json:"roll"`
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	ExpiresAt int64                  `json:"expires_at"`
}

// RollSessionRequest addresses one roll log
type RollSessionRequest struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// GetRollSessionResponse returns a roll log
type GetRollSessionResponse struct {
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	ExpiresAt int64                  `json:"expires_at"`
	CreatedAt int64                  `json:"created_at"`
}

// ClearRollSessionResponse reports how many rolls were dropped
type ClearRollSessionResponse struct {
	Message      string `json:"message"`
	RollsCleared int    `json:"rolls_cleared"`
}

// DiceServiceServer is the server API for the dice service
type DiceServiceServer interface {
	RollDice(context.Context, *RollDiceRequest) (*RollDiceResponse, error)
	GetRollSession(context.Context, *RollSessionRequest) (*GetRollSessionResponse, error)
	ClearRollSession(context.Context, *RollSessionRequest) (*ClearRollSessionResponse, error)
}

// ServiceDesc describes the dice service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		jsoncodec.Unary(ServiceName, "RollDice", DiceServiceServer.RollDice),
		jsoncodec.Unary(ServiceName, "GetRollSession", DiceServiceServer.GetRollSession),
		jsoncodec.Unary(ServiceName, "ClearRollSession", DiceServiceServer.ClearRollSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dmapi/dice/v1alpha1/dice.json",
}

// RegisterDiceServiceServer registers srv with s
func RegisterDiceServiceServer(s grpc.ServiceRegistrar, srv DiceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the dice service over a JSON-coded connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) RollDice(ctx context.Context, req *RollDiceRequest, opts ...grpc.CallOption) (*RollDiceResponse, error) {
	return jsoncodec.Invoke[RollDiceResponse](ctx, c.conn, ServiceName, "RollDice", req, opts...)
}

func (c *Client) GetRollSession(ctx context.Context, req *RollSessionRequest, opts ...grpc.CallOption) (*GetRollSessionResponse, error) {
	return jsoncodec.Invoke[GetRollSessionResponse](ctx, c.conn, ServiceName, "GetRollSession", req, opts...)
}

func (c *Client) ClearRollSession(ctx context.Context, req *RollSessionRequest, opts ...grpc.CallOption) (*ClearRollSessionResponse, error) {
	return jsoncodec.Invoke[ClearRollSessionResponse](ctx, c.conn, ServiceName, "ClearRollSession", req, opts...)
}
