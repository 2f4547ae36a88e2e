package temporal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestDial_Disabled(t *testing.T) {
	c, err := Dial(Config{Disabled: true}, nil, nil)
	require.ErrorIs(t, err, ErrDisabled)
	require.Nil(t, c)
}

func TestClientOptions_Defaults(t *testing.T) {
	options, err := ClientOptions(Config{}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, client.DefaultHostPort, options.HostPort)
	require.Equal(t, client.DefaultNamespace, options.Namespace)
	require.Len(t, options.Interceptors, 1)
	require.NotNil(t, options.Logger)

	options, err = ClientOptions(Config{Address: "temporal:7233", Namespace: "shop"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "temporal:7233", options.HostPort)
	require.Equal(t, "shop", options.Namespace)
}
