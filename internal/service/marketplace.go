// Package service implements the marketplace operations behind the bot:
// role registration, listing creation, paginated browsing, and
// ownership-scoped deletion.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m3rciful/findyourad/core/logger"
	"github.com/m3rciful/findyourad/internal/domain"
	"github.com/m3rciful/findyourad/internal/pagination"
)

// UserStore persists roles keyed by the caller's numeric identity.
type UserStore interface {
	GetRole(ctx context.Context, userID int64) (domain.Role, error)
	SetRole(ctx context.Context, userID int64, username string, role domain.Role) error
	CountUsers(ctx context.Context) (int, error)
}

// ListingStore persists the two listing collections.
type ListingStore interface {
	CreateAdRequest(ctx context.Context, ownerID int64, description string, audience int, tags string, price float64) (int64, error)
	CreateChannel(ctx context.Context, ownerID int64, link, name string, pricePerPost float64, tags string) (int64, error)
	CountAdRequests(ctx context.Context) (int, error)
	CountChannels(ctx context.Context) (int, error)
	PageAdRequests(ctx context.Context, offset, limit int) ([]domain.AdRequestView, error)
	PageChannels(ctx context.Context, offset, limit int) ([]domain.ChannelView, error)
	AdRequestsByOwner(ctx context.Context, ownerID int64) ([]domain.AdRequest, error)
	ChannelsByOwner(ctx context.Context, ownerID int64) ([]domain.ChannelListing, error)
	DeleteAdRequest(ctx context.Context, id, ownerID int64) (bool, error)
	DeleteChannel(ctx context.Context, id, ownerID int64) (bool, error)
}

// Marketplace orchestrates stores and page math for the bot handlers.
type Marketplace struct {
	users    UserStore
	listings ListingStore
}

// New assembles the marketplace service.
func New(users UserStore, listings ListingStore) *Marketplace {
	return &Marketplace{users: users, listings: listings}
}

// AddRequestInput carries a parsed /add_request invocation.
type AddRequestInput struct {
	Description string
	Audience    int
	Tags        string
	Price       float64
}

// AddChannelInput carries a parsed /add_channel invocation.
type AddChannelInput struct {
	Link         string
	Name         string
	PricePerPost float64
	Tags         string
}

// RequestsPage is one rendered-ready page of ad requests.
type RequestsPage struct {
	Number  int
	Total   int
	Records []domain.AdRequestView
}

// ChannelsPage is one rendered-ready page of channel listings.
type ChannelsPage struct {
	Number  int
	Total   int
	Records []domain.ChannelView
}

// Stats aggregates marketplace counters for the admin command.
type Stats struct {
	Users      int
	AdRequests int
	Channels   int
}

// RoleOf resolves the caller's role, degrading storage failures to "no role".
// The soft-fail only affects the authorization outcome, never stored data.
func (m *Marketplace) RoleOf(ctx context.Context, userID int64) (domain.Role, bool) {
	role, err := m.users.GetRole(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error(ctx, "service.marketplace", "role.lookup_failed",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return "", false
	}
	return role, true
}

// SetRole registers or replaces the caller's role.
func (m *Marketplace) SetRole(ctx context.Context, userID int64, username string, role domain.Role) error {
	if !role.Valid() {
		return &domain.ValidationError{Field: "role", Reason: "must be advertiser or seller"}
	}
	if err := m.users.SetRole(ctx, userID, username, role); err != nil {
		return &domain.StorageError{Op: "set role", Err: err}
	}
	logger.Info(ctx, "service.marketplace", "role.set",
		slog.Int64("user_id", userID),
		slog.String("role", string(role)),
	)
	return nil
}

// AddRequest validates and stores a new ad request for an advertiser.
// Input is applied all-or-nothing: any violation leaves the store untouched.
func (m *Marketplace) AddRequest(ctx context.Context, callerID int64, in AddRequestInput) (int64, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleAdvertiser); err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return 0, &domain.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if in.Audience < domain.MinAudience || in.Audience > domain.MaxAudience {
		return 0, &domain.ValidationError{Field: "audience", Reason: "must be between 1 and 10000000"}
	}
	if in.Price <= 0 {
		return 0, &domain.ValidationError{Field: "price", Reason: "must be positive"}
	}

	tags := strings.ToLower(strings.TrimSpace(in.Tags))
	id, err := m.listings.CreateAdRequest(ctx, callerID, in.Description, in.Audience, tags, in.Price)
	if err != nil {
		return 0, &domain.StorageError{Op: "create ad request", Err: err}
	}
	logger.Info(ctx, "service.marketplace", "ad_request.created",
		slog.Int64("user_id", callerID),
		slog.Int64("id", id),
	)
	return id, nil
}

// AddChannel validates and stores a new channel listing for a seller.
func (m *Marketplace) AddChannel(ctx context.Context, callerID int64, in AddChannelInput) (int64, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleSeller); err != nil {
		return 0, err
	}
	if !strings.HasPrefix(in.Link, "@") {
		return 0, &domain.ValidationError{Field: "channel", Reason: "handle must start with @"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.PricePerPost <= 0 {
		return 0, &domain.ValidationError{Field: "price", Reason: "must be positive"}
	}

	tags := strings.ToLower(strings.TrimSpace(in.Tags))
	id, err := m.listings.CreateChannel(ctx, callerID, in.Link, in.Name, in.PricePerPost, tags)
	if err != nil {
		return 0, &domain.StorageError{Op: "create channel", Err: err}
	}
	logger.Info(ctx, "service.marketplace", "channel.created",
		slog.Int64("user_id", callerID),
		slog.Int64("id", id),
	)
	return id, nil
}

// BrowseRequests returns one clamped page of ad requests for a seller.
// An out-of-range page request resets to page 1.
func (m *Marketplace) BrowseRequests(ctx context.Context, callerID int64, page int) (RequestsPage, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleSeller); err != nil {
		return RequestsPage{}, err
	}

	count, err := m.listings.CountAdRequests(ctx)
	if err != nil {
		return RequestsPage{}, &domain.StorageError{Op: "count ad requests", Err: err}
	}
	total := pagination.TotalPages(count, pagination.PageSize)
	if total == 0 {
		return RequestsPage{Number: 1, Total: 0}, nil
	}

	page = pagination.Clamp(page, total)
	records, err := m.listings.PageAdRequests(ctx, pagination.Offset(page, pagination.PageSize), pagination.PageSize)
	if err != nil {
		return RequestsPage{}, &domain.StorageError{Op: "page ad requests", Err: err}
	}
	return RequestsPage{Number: page, Total: total, Records: records}, nil
}

// BrowseChannels returns one clamped page of channel listings for an advertiser.
func (m *Marketplace) BrowseChannels(ctx context.Context, callerID int64, page int) (ChannelsPage, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleAdvertiser); err != nil {
		return ChannelsPage{}, err
	}

	count, err := m.listings.CountChannels(ctx)
	if err != nil {
		return ChannelsPage{}, &domain.StorageError{Op: "count channels", Err: err}
	}
	total := pagination.TotalPages(count, pagination.PageSize)
	if total == 0 {
		return ChannelsPage{Number: 1, Total: 0}, nil
	}

	page = pagination.Clamp(page, total)
	records, err := m.listings.PageChannels(ctx, pagination.Offset(page, pagination.PageSize), pagination.PageSize)
	if err != nil {
		return ChannelsPage{}, &domain.StorageError{Op: "page channels", Err: err}
	}
	return ChannelsPage{Number: page, Total: total, Records: records}, nil
}

// MyRequests lists every ad request owned by the caller.
func (m *Marketplace) MyRequests(ctx context.Context, callerID int64) ([]domain.AdRequest, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleAdvertiser); err != nil {
		return nil, err
	}
	records, err := m.listings.AdRequestsByOwner(ctx, callerID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list own ad requests", Err: err}
	}
	return records, nil
}

// MyChannels lists every channel listing owned by the caller.
func (m *Marketplace) MyChannels(ctx context.Context, callerID int64) ([]domain.ChannelListing, error) {
	if err := m.requireRole(ctx, callerID, domain.RoleSeller); err != nil {
		return nil, err
	}
	records, err := m.listings.ChannelsByOwner(ctx, callerID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list own channels", Err: err}
	}
	return records, nil
}

// DeleteRequest removes the caller's ad request. Ownership is enforced by the
// store; deleting a foreign or absent id reports false without an error, so
// callers cannot probe who owns what.
func (m *Marketplace) DeleteRequest(ctx context.Context, callerID, id int64) (bool, error) {
	ok, err := m.listings.DeleteAdRequest(ctx, id, callerID)
	if err != nil {
		return false, &domain.StorageError{Op: "delete ad request", Err: err}
	}
	if ok {
		logger.Info(ctx, "service.marketplace", "ad_request.deleted",
			slog.Int64("user_id", callerID),
			slog.Int64("id", id),
		)
	}
	return ok, nil
}

// DeleteChannel removes the caller's channel listing under the same rules.
func (m *Marketplace) DeleteChannel(ctx context.Context, callerID, id int64) (bool, error) {
	ok, err := m.listings.DeleteChannel(ctx, id, callerID)
	if err != nil {
		return false, &domain.StorageError{Op: "delete channel", Err: err}
	}
	if ok {
		logger.Info(ctx, "service.marketplace", "channel.deleted",
			slog.Int64("user_id", callerID),
			slog.Int64("id", id),
		)
	}
	return ok, nil
}

// CollectStats gathers marketplace counters for the admin command.
func (m *Marketplace) CollectStats(ctx context.Context) (Stats, error) {
	users, err := m.users.CountUsers(ctx)
	if err != nil {
		return Stats{}, &domain.StorageError{Op: "count users", Err: err}
	}
	requests, err := m.listings.CountAdRequests(ctx)
	if err != nil {
		return Stats{}, &domain.StorageError{Op: "count ad requests", Err: err}
	}
	channels, err := m.listings.CountChannels(ctx)
	if err != nil {
		return Stats{}, &domain.StorageError{Op: "count channels", Err: err}
	}
	return Stats{Users: users, AdRequests: requests, Channels: channels}, nil
}

func (m *Marketplace) requireRole(ctx context.Context, callerID int64, required domain.Role) error {
	role, ok := m.RoleOf(ctx, callerID)
	if !ok || role != required {
		return &domain.AuthorizationError{Required: required}
	}
	return nil
}
