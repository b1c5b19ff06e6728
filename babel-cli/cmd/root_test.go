package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := Cmd()
	assert.NotEmpty(t, root.Version)

	var tests = map[string][]string{
		"keys":      {"create", "import", "list"},
		"chain":     {"node", "txn"},
		"deploy":    {"babel", "auth-mint", "merkle-mint"},
		"babel":     {"mint", "batch-mint", "burn", "set-token-uri", "update-token-uri", "transfer-ownership", "info", "token", "balance"},
		"auth-mint": {"sign", "sign-with-key", "claim", "claim-file", "verify", "grant-minter", "revoke-minter", "is-minter", "owner-of", "serve"},
		"merkle":    {"create", "proof", "verify", "claim", "owner-of"},
	}
	for group, subs := range tests {
		t.Run(group, func(t *testing.T) {
			for _, sub := range subs {
				c, rest, err := root.Find([]string{group, sub})
				require.NoError(t, err)
				assert.Empty(t, rest)
				assert.Equal(t, sub, c.Name())
				assert.NotNil(t, c.Run, "%s %s has no handler", group, sub)
			}
		})
	}

	events, _, err := root.Find([]string{"events"})
	require.NoError(t, err)
	for _, flag := range []string{"from-block", "poll-interval", "batch-size", "metrics-addr"} {
		assert.NotNil(t, events.Flags().Lookup(flag), flag)
	}
}

func TestArgsValidation(t *testing.T) {
	root := Cmd()
	var tests = map[string]struct {
		args    []string
		wantErr bool
	}{
		"mint ok":            {[]string{"babel", "mint", "0x1", "pwd", "ipfs://a"}, false},
		"mint missing uri":   {[]string{"babel", "mint", "0x1", "pwd"}, true},
		"verify no proof":    {[]string{"merkle", "verify", "0x1", "0x2", "1"}, false},
		"verify with proof":  {[]string{"merkle", "verify", "0x1", "0x2", "1", "0x3"}, false},
		"verify extra args":  {[]string{"merkle", "verify", "0x1", "0x2", "1", "0x3", "x"}, true},
		"claim missing sig":  {[]string{"auth-mint", "claim", "0x1", "pwd", "0x2", "1"}, true},
		"events no contract": {[]string{"events"}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, rest, err := root.Find(tt.args)
			require.NoError(t, err)
			err = c.ValidateArgs(rest)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
