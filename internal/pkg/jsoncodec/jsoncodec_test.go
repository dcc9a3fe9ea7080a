package jsoncodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/jsoncodec"
)

type message struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

func TestCodec_Registered(t *testing.T) {
	codec := encoding.GetCodec(jsoncodec.Name)
	require.NotNil(t, codec)
	assert.Equal(t, "json", codec.Name())
}

func TestCodec_MarshalUnmarshal(t *testing.T) {
	codec := jsoncodec.Codec{}

	data, err := codec.Marshal(&message{ID: "goblin", Amount: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"goblin","amount":7}`, string(data))

	var got message
	require.NoError(t, codec.Unmarshal(data, &got))
	assert.Equal(t, message{ID: "goblin", Amount: 7}, got)
}

func TestCodec_EmptyPayload(t *testing.T) {
	got := message{ID: "unchanged"}
	require.NoError(t, jsoncodec.Codec{}.Unmarshal(nil, &got))
	assert.Equal(t, "unchanged", got.ID)
}

func TestCodec_BadPayload(t *testing.T) {
	var got message
	err := jsoncodec.Codec{}.Unmarshal([]byte("{"), &got)
	assert.True(t, errors.IsInvalidArgument(err))
}
