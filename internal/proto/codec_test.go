package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestCodec_RoundTrip(t *testing.T) {
	c := jsonCodec{}
	in := &ChangePasswordRequest{Identity: "alice", OldPassword: "a", NewPassword: "b"}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"identity":"alice","old_password":"a","new_password":"b"}`, string(b))

	var out ChangePasswordRequest
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, *in, out)
}

func TestCodec_Errors(t *testing.T) {
	c := jsonCodec{}
	_, err := c.Marshal(func() {})
	assert.Error(t, err)

	var out LoginRequest
	assert.Error(t, c.Unmarshal([]byte("{"), &out))
	assert.NoError(t, c.Unmarshal(nil, &out), "empty payload decodes to zero message")
}
