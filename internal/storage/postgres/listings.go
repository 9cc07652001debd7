package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/findyourad/internal/domain"
)

// Listings persists the two parallel listing collections:
// advertiser ad requests and seller channels. Each call runs as its own
// short-lived statement on the pooled connection; isolation comes from
// the storage engine, not application locks.
type Listings struct {
	db *sqlx.DB
}

// NewListings returns a listing repository over the shared connection pool.
func NewListings(db *sqlx.DB) *Listings {
	return &Listings{db: db}
}

// CreateAdRequest inserts a new ad request and returns the assigned id.
func (r *Listings) CreateAdRequest(ctx context.Context, ownerID int64, description string, audience int, tags string, price float64) (int64, error) {
	query, args, err := sq.Insert("ad_requests").
		Columns("user_id", "description", "target_audience", "tags", "price").
		Values(ownerID, description, audience, tags, price).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateChannel inserts a new channel listing and returns the assigned id.
func (r *Listings) CreateChannel(ctx context.Context, ownerID int64, link, name string, pricePerPost float64, tags string) (int64, error) {
	query, args, err := sq.Insert("seller_channels").
		Columns("user_id", "channel_link", "channel_name", "price_per_post", "tags").
		Values(ownerID, link, name, pricePerPost, tags).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// CountAdRequests returns the total number of ad requests.
func (r *Listings) CountAdRequests(ctx context.Context) (int, error) {
	return r.count(ctx, "ad_requests")
}

// CountChannels returns the total number of channel listings.
func (r *Listings) CountChannels(ctx context.Context) (int, error) {
	return r.count(ctx, "seller_channels")
}

func (r *Listings) count(ctx context.Context, table string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(table).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// PageAdRequests returns one page of ad requests in insertion order,
// each joined with the owner's display name at read time.
func (r *Listings) PageAdRequests(ctx context.Context, offset, limit int) ([]domain.AdRequestView, error) {
	query, args, err := sq.Select(
		"ar.id",
		"ar.user_id",
		"ar.description",
		"ar.target_audience",
		"ar.tags",
		"ar.price",
		"ar.created_at",
		"u.username",
	).
		From("ad_requests ar").
		Join("users u ON ar.user_id = u.user_id").
		OrderBy("ar.id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var records []domain.AdRequestView
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// PageChannels returns one page of channel listings in insertion order,
// each joined with the owner's display name at read time.
func (r *Listings) PageChannels(ctx context.Context, offset, limit int) ([]domain.ChannelView, error) {
	query, args, err := sq.Select(
		"sc.id",
		"sc.user_id",
		"sc.channel_link",
		"sc.channel_name",
		"sc.price_per_post",
		"sc.tags",
		"sc.created_at",
		"u.username",
	).
		From("seller_channels sc").
		Join("users u ON sc.user_id = u.user_id").
		OrderBy("sc.id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var records []domain.ChannelView
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// AdRequestsByOwner returns every ad request owned by the given user, id ascending.
func (r *Listings) AdRequestsByOwner(ctx context.Context, ownerID int64) ([]domain.AdRequest, error) {
	query, args, err := sq.Select("id", "user_id", "description", "target_audience", "tags", "price", "created_at").
		From("ad_requests").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var records []domain.AdRequest
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// ChannelsByOwner returns every channel listing owned by the given user, id ascending.
func (r *Listings) ChannelsByOwner(ctx context.Context, ownerID int64) ([]domain.ChannelListing, error) {
	query, args, err := sq.Select("id", "user_id", "channel_link", "channel_name", "price_per_post", "tags", "created_at").
		From("seller_channels").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var records []domain.ChannelListing
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAdRequest removes the ad request only when owned by ownerID.
// Deleting another user's record is a silent no-op: false, no error.
func (r *Listings) DeleteAdRequest(ctx context.Context, id, ownerID int64) (bool, error) {
	return r.delete(ctx, "ad_requests", id, ownerID)
}

// DeleteChannel removes the channel listing only when owned by ownerID.
func (r *Listings) DeleteChannel(ctx context.Context, id, ownerID int64) (bool, error) {
	return r.delete(ctx, "seller_channels", id, ownerID)
}

func (r *Listings) delete(ctx context.Context, table string, id, ownerID int64) (bool, error) {
	query, args, err := sq.Delete(table).
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
