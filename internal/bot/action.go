package bot

import (
	"fmt"
	"strconv"

	"github.com/m3rciful/findyourad/internal/domain"
)

// Callback keys carried on inline buttons. Every button action is a
// self-contained (key, payload) pair, so a press is valid no matter how
// old the message it arrived from is.
const (
	KeyRole         = "role"
	KeyRequestsPage = "req_page"
	KeyChannelsPage = "chan_page"
	KeyDeleteReq    = "del_req"
	KeyDeleteChan   = "del_chan"
	KeyMyRequests   = "my_requests"
	KeyMyChannels   = "my_channels"
	KeyShowMenu     = "show_help"
)

// ActionKind enumerates what a pressed button asks for.
type ActionKind int

const (
	// ActionRoleSelect registers the pressing user under Role.
	ActionRoleSelect ActionKind = iota
	// ActionPageTurn opens page Page of the Listing collection.
	ActionPageTurn
	// ActionDelete removes record ID from the Listing collection if owned.
	ActionDelete
	// ActionMyListings shows the pressing user's own Listing records.
	ActionMyListings
	// ActionShowMenu re-renders the command menu.
	ActionShowMenu
)

// Action is the decoded form of a callback button press.
type Action struct {
	Kind    ActionKind
	Role    domain.Role
	Listing domain.ListingKind
	Page    int
	ID      int64
}

// Encode renders the action as a callback (key, payload) pair.
func (a Action) Encode() (string, string, error) {
	switch a.Kind {
	case ActionRoleSelect:
		if !a.Role.Valid() {
			return "", "", fmt.Errorf("encode action: invalid role %q", a.Role)
		}
		return KeyRole, string(a.Role), nil
	case ActionPageTurn:
		key := KeyRequestsPage
		if a.Listing == domain.KindChannels {
			key = KeyChannelsPage
		}
		return key, strconv.Itoa(a.Page), nil
	case ActionDelete:
		key := KeyDeleteReq
		if a.Listing == domain.KindChannels {
			key = KeyDeleteChan
		}
		return key, strconv.FormatInt(a.ID, 10), nil
	case ActionMyListings:
		if a.Listing == domain.KindChannels {
			return KeyMyChannels, "", nil
		}
		return KeyMyRequests, "", nil
	case ActionShowMenu:
		return KeyShowMenu, "", nil
	}
	return "", "", fmt.Errorf("encode action: unknown kind %d", a.Kind)
}

// DecodeAction parses a callback (key, payload) pair back into an action.
// Unknown keys and malformed payloads fail, never panic: the pair arrives
// from the wire and may be arbitrarily stale or forged.
func DecodeAction(key, payload string) (Action, error) {
	switch key {
	case KeyRole:
		role, err := domain.ParseRole(payload)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionRoleSelect, Role: role}, nil
	case KeyRequestsPage, KeyChannelsPage:
		page, err := strconv.Atoi(payload)
		if err != nil {
			return Action{}, &domain.ValidationError{Field: "page", Reason: "not a number"}
		}
		listing := domain.KindAdRequests
		if key == KeyChannelsPage {
			listing = domain.KindChannels
		}
		return Action{Kind: ActionPageTurn, Listing: listing, Page: page}, nil
	case KeyDeleteReq, KeyDeleteChan:
		id, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return Action{}, &domain.ValidationError{Field: "id", Reason: "not a number"}
		}
		listing := domain.KindAdRequests
		if key == KeyDeleteChan {
			listing = domain.KindChannels
		}
		return Action{Kind: ActionDelete, Listing: listing, ID: id}, nil
	case KeyMyRequests:
		return Action{Kind: ActionMyListings, Listing: domain.KindAdRequests}, nil
	case KeyMyChannels:
		return Action{Kind: ActionMyListings, Listing: domain.KindChannels}, nil
	case KeyShowMenu:
		return Action{Kind: ActionShowMenu}, nil
	}
	return Action{}, &domain.ValidationError{Field: "action", Reason: fmt.Sprintf("unknown key %q", key)}
}
