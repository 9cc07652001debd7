package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/findyourad/internal/domain"
	"github.com/m3rciful/findyourad/internal/pagination"
)

type fakeUsers struct {
	roles map[int64]domain.Role
	err   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{roles: make(map[int64]domain.Role)}
}

func (f *fakeUsers) GetRole(_ context.Context, userID int64) (domain.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return role, nil
}

func (f *fakeUsers) SetRole(_ context.Context, userID int64, _ string, role domain.Role) error {
	if f.err != nil {
		return f.err
	}
	f.roles[userID] = role
	return nil
}

func (f *fakeUsers) CountUsers(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.roles), nil
}

type fakeListings struct {
	nextID   int64
	requests []domain.AdRequest
	channels []domain.ChannelListing
	reads    int
	err      error
}

func (f *fakeListings) CreateAdRequest(_ context.Context, ownerID int64, description string, audience int, tags string, price float64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.requests = append(f.requests, domain.AdRequest{
		ID:             f.nextID,
		OwnerID:        ownerID,
		Description:    description,
		TargetAudience: audience,
		Tags:           tags,
		Price:          price,
	})
	return f.nextID, nil
}

func (f *fakeListings) CreateChannel(_ context.Context, ownerID int64, link, name string, pricePerPost float64, tags string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.channels = append(f.channels, domain.ChannelListing{
		ID:           f.nextID,
		OwnerID:      ownerID,
		Link:         link,
		Name:         name,
		PricePerPost: pricePerPost,
		Tags:         tags,
	})
	return f.nextID, nil
}

func (f *fakeListings) CountAdRequests(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.reads++
	return len(f.requests), nil
}

func (f *fakeListings) CountChannels(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.reads++
	return len(f.channels), nil
}

func (f *fakeListings) PageAdRequests(_ context.Context, offset, limit int) ([]domain.AdRequestView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reads++
	var out []domain.AdRequestView
	for i := offset; i < len(f.requests) && i < offset+limit; i++ {
		out = append(out, domain.AdRequestView{AdRequest: f.requests[i], OwnerName: "@owner"})
	}
	return out, nil
}

func (f *fakeListings) PageChannels(_ context.Context, offset, limit int) ([]domain.ChannelView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reads++
	var out []domain.ChannelView
	for i := offset; i < len(f.channels) && i < offset+limit; i++ {
		out = append(out, domain.ChannelView{ChannelListing: f.channels[i], OwnerName: "@owner"})
	}
	return out, nil
}

func (f *fakeListings) AdRequestsByOwner(_ context.Context, ownerID int64) ([]domain.AdRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reads++
	var out []domain.AdRequest
	for _, r := range f.requests {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeListings) ChannelsByOwner(_ context.Context, ownerID int64) ([]domain.ChannelListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reads++
	var out []domain.ChannelListing
	for _, c := range f.channels {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeListings) DeleteAdRequest(_ context.Context, id, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, r := range f.requests {
		if r.ID == id && r.OwnerID == ownerID {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeListings) DeleteChannel(_ context.Context, id, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, c := range f.channels {
		if c.ID == id && c.OwnerID == ownerID {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newMarketplace(t *testing.T) (*Marketplace, *fakeUsers, *fakeListings) {
	t.Helper()
	users := newFakeUsers()
	listings := &fakeListings{}
	return New(users, listings), users, listings
}

func TestAddRequestThenMyRequests(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser

	id, err := svc.AddRequest(ctx, 1, AddRequestInput{
		Description: "Banner ad",
		Audience:    5000,
		Tags:        "Tech,Finance",
		Price:       49.99,
	})
	require.NoError(t, err)

	mine, err := svc.MyRequests(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ID)
	assert.Equal(t, "Banner ad", mine[0].Description)
	assert.Equal(t, 5000, mine[0].TargetAudience)
	assert.Equal(t, "tech,finance", mine[0].Tags)
	assert.Equal(t, 49.99, mine[0].Price)
}

func TestAddRequestValidation(t *testing.T) {
	ctx := context.Background()
	svc, users, listings := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser

	cases := []struct {
		name string
		in   AddRequestInput
	}{
		{"empty description", AddRequestInput{Description: " ", Audience: 10, Tags: "t", Price: 1}},
		{"audience too small", AddRequestInput{Description: "d", Audience: 0, Tags: "t", Price: 1}},
		{"audience too big", AddRequestInput{Description: "d", Audience: 10_000_001, Tags: "t", Price: 1}},
		{"zero price", AddRequestInput{Description: "d", Audience: 10, Tags: "t", Price: 0}},
		{"negative price", AddRequestInput{Description: "d", Audience: 10, Tags: "t", Price: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddRequest(ctx, 1, tc.in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Empty(t, listings.requests)
}

func TestAddChannelValidation(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[2] = domain.RoleSeller

	_, err := svc.AddChannel(ctx, 2, AddChannelInput{Link: "technews", Name: "n", PricePerPost: 1, Tags: "t"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.AddChannel(ctx, 2, AddChannelInput{Link: "@technews", Name: "n", PricePerPost: 0, Tags: "t"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	id, err := svc.AddChannel(ctx, 2, AddChannelInput{Link: "@technews", Name: "Tech News", PricePerPost: 15, Tags: "TECH"})
	require.NoError(t, err)

	mine, err := svc.MyChannels(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ID)
	assert.Equal(t, "tech", mine[0].Tags)
}

func TestRoleMismatchBeforeReads(t *testing.T) {
	ctx := context.Background()
	svc, users, listings := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser
	users.roles[2] = domain.RoleSeller

	_, err := svc.BrowseRequests(ctx, 1, 1)
	assert.True(t, domain.IsAuthorization(err))

	_, err = svc.BrowseChannels(ctx, 2, 1)
	assert.True(t, domain.IsAuthorization(err))

	_, err = svc.MyRequests(ctx, 2)
	assert.True(t, domain.IsAuthorization(err))

	_, err = svc.MyChannels(ctx, 1)
	assert.True(t, domain.IsAuthorization(err))

	_, err = svc.AddRequest(ctx, 2, AddRequestInput{Description: "d", Audience: 1, Tags: "t", Price: 1})
	assert.True(t, domain.IsAuthorization(err))

	_, err = svc.AddChannel(ctx, 1, AddChannelInput{Link: "@c", Name: "n", PricePerPost: 1, Tags: "t"})
	assert.True(t, domain.IsAuthorization(err))

	assert.Zero(t, listings.reads)
}

func TestRoleSoftFailOnStorageError(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.err = errors.New("connection refused")

	role, ok := svc.RoleOf(ctx, 1)
	assert.False(t, ok)
	assert.Empty(t, role)

	_, err := svc.BrowseRequests(ctx, 1, 1)
	assert.True(t, domain.IsAuthorization(err))
}

func TestBrowsePagingRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser
	users.roles[2] = domain.RoleSeller

	const n = 7
	for i := 0; i < n; i++ {
		_, err := svc.AddRequest(ctx, 1, AddRequestInput{
			Description: "d",
			Audience:    100,
			Tags:        "t",
			Price:       1,
		})
		require.NoError(t, err)
	}

	var seen []int64
	page := 1
	for {
		p, err := svc.BrowseRequests(ctx, 2, page)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Total)
		for _, rec := range p.Records {
			seen = append(seen, rec.ID)
		}
		if p.Number >= p.Total {
			break
		}
		page = p.Number + 1
	}

	require.Len(t, seen, n)
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	for i := 1; i < len(seen); i++ {
		assert.NotEqual(t, seen[i-1], seen[i])
	}
}

func TestBrowseClampsOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser
	users.roles[2] = domain.RoleSeller

	for i := 0; i < pagination.PageSize+1; i++ {
		_, err := svc.AddRequest(ctx, 1, AddRequestInput{Description: "d", Audience: 1, Tags: "t", Price: 1})
		require.NoError(t, err)
	}

	p, err := svc.BrowseRequests(ctx, 2, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 2, p.Total)
	assert.Len(t, p.Records, pagination.PageSize)
}

func TestBrowseEmptyCollection(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[2] = domain.RoleSeller

	p, err := svc.BrowseRequests(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Zero(t, p.Total)
	assert.Empty(t, p.Records)
}

func TestDeleteOwnedAndForeign(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser
	users.roles[3] = domain.RoleAdvertiser

	id, err := svc.AddRequest(ctx, 1, AddRequestInput{Description: "d", Audience: 1, Tags: "t", Price: 1})
	require.NoError(t, err)

	// foreign owner: silent no-op
	ok, err := svc.DeleteRequest(ctx, 3, id)
	require.NoError(t, err)
	assert.False(t, ok)

	mine, err := svc.MyRequests(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	ok, err = svc.DeleteRequest(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, ok)

	// repeated delete is idempotent
	ok, err = svc.DeleteRequest(ctx, 1, id)
	require.NoError(t, err)
	assert.False(t, ok)

	mine, err = svc.MyRequests(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDeleteChannelOwned(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[2] = domain.RoleSeller

	id, err := svc.AddChannel(ctx, 2, AddChannelInput{Link: "@c", Name: "n", PricePerPost: 1, Tags: "t"})
	require.NoError(t, err)

	ok, err := svc.DeleteChannel(ctx, 2, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeleteChannel(ctx, 2, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetRoleOverwrites(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMarketplace(t)

	require.NoError(t, svc.SetRole(ctx, 1, "@alice", domain.RoleAdvertiser))
	role, ok := svc.RoleOf(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdvertiser, role)

	require.NoError(t, svc.SetRole(ctx, 1, "@alice", domain.RoleSeller))
	role, ok = svc.RoleOf(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, domain.RoleSeller, role)

	err := svc.SetRole(ctx, 1, "@alice", "king")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCollectStats(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newMarketplace(t)
	users.roles[1] = domain.RoleAdvertiser
	users.roles[2] = domain.RoleSeller

	_, err := svc.AddRequest(ctx, 1, AddRequestInput{Description: "d", Audience: 1, Tags: "t", Price: 1})
	require.NoError(t, err)
	_, err = svc.AddChannel(ctx, 2, AddChannelInput{Link: "@c", Name: "n", PricePerPost: 1, Tags: "t"})
	require.NoError(t, err)

	stats, err := svc.CollectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, 1, stats.AdRequests)
	assert.Equal(t, 1, stats.Channels)
}

func TestStorageErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	svc, users, listings := newMarketplace(t)
	users.roles[2] = domain.RoleSeller
	listings.err = errors.New("connection refused")

	_, err := svc.BrowseRequests(ctx, 2, 1)
	require.Error(t, err)
	var se *domain.StorageError
	assert.True(t, errors.As(err, &se))

	_, err = svc.DeleteChannel(ctx, 2, 1)
	require.Error(t, err)
	assert.True(t, errors.As(err, &se))
}
