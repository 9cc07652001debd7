package domain

import "time"

// Audience bounds accepted for an ad request.
const (
	MinAudience = 1
	MaxAudience = 10_000_000
)

// ListingKind distinguishes the two parallel listing collections.
type ListingKind string

const (
	// KindAdRequests is the collection of advertiser ad requests.
	KindAdRequests ListingKind = "ad_requests"
	// KindChannels is the collection of seller channel listings.
	KindChannels ListingKind = "seller_channels"
)

// AdRequest is an advertiser's request for ad placement.
// Owned exclusively by its creator; only the owner may delete it.
type AdRequest struct {
	ID             int64     `db:"id"`
	OwnerID        int64     `db:"user_id"`
	Description    string    `db:"description"`
	TargetAudience int       `db:"target_audience"`
	Tags           string    `db:"tags"`
	Price          float64   `db:"price"`
	CreatedAt      time.Time `db:"created_at"`
}

// AdRequestView is an ad request enriched with the owner's display name.
// The name is joined in at read time and never denormalized into the row.
type AdRequestView struct {
	AdRequest
	OwnerName string `db:"username"`
}

// ChannelListing is a seller's channel offered for ad posts.
type ChannelListing struct {
	ID           int64     `db:"id"`
	OwnerID      int64     `db:"user_id"`
	Link         string    `db:"channel_link"`
	Name         string    `db:"channel_name"`
	PricePerPost float64   `db:"price_per_post"`
	Tags         string    `db:"tags"`
	CreatedAt    time.Time `db:"created_at"`
}

// ChannelView is a channel listing enriched with the owner's display name.
type ChannelView struct {
	ChannelListing
	OwnerName string `db:"username"`
}
