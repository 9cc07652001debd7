package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/findyourad/internal/domain"
)

func TestActionRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		action Action
	}{
		{"role select", Action{Kind: ActionRoleSelect, Role: domain.RoleAdvertiser}},
		{"requests page", Action{Kind: ActionPageTurn, Listing: domain.KindAdRequests, Page: 2}},
		{"channels page", Action{Kind: ActionPageTurn, Listing: domain.KindChannels, Page: 5}},
		{"delete request", Action{Kind: ActionDelete, Listing: domain.KindAdRequests, ID: 42}},
		{"delete channel", Action{Kind: ActionDelete, Listing: domain.KindChannels, ID: 7}},
		{"my requests", Action{Kind: ActionMyListings, Listing: domain.KindAdRequests}},
		{"my channels", Action{Kind: ActionMyListings, Listing: domain.KindChannels}},
		{"show menu", Action{Kind: ActionShowMenu}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload, err := tc.action.Encode()
			require.NoError(t, err)

			got, err := DecodeAction(key, payload)
			require.NoError(t, err)
			assert.Equal(t, tc.action.Kind, got.Kind)
			assert.Equal(t, tc.action.Role, got.Role)
			assert.Equal(t, tc.action.Page, got.Page)
			assert.Equal(t, tc.action.ID, got.ID)
		})
	}
}

func TestActionWireKeys(t *testing.T) {
	key, payload, err := Action{Kind: ActionPageTurn, Listing: domain.KindAdRequests, Page: 3}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "req_page", key)
	assert.Equal(t, "3", payload)

	key, payload, err = Action{Kind: ActionDelete, Listing: domain.KindChannels, ID: 11}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "del_chan", key)
	assert.Equal(t, "11", payload)

	key, payload, err = Action{Kind: ActionRoleSelect, Role: domain.RoleSeller}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "role", key)
	assert.Equal(t, "seller", payload)
}

func TestDecodeActionErrors(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		payload string
	}{
		{"unknown key", "bogus", "1"},
		{"bad role", KeyRole, "king"},
		{"non-numeric page", KeyRequestsPage, "abc"},
		{"empty page", KeyChannelsPage, ""},
		{"non-numeric id", KeyDeleteReq, "x"},
		{"empty id", KeyDeleteChan, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAction(tc.key, tc.payload)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestEncodeInvalidRole(t *testing.T) {
	_, _, err := Action{Kind: ActionRoleSelect, Role: "king"}.Encode()
	require.Error(t, err)
}
