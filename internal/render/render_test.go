package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/findyourad/internal/domain"
)

func sampleRequest() domain.AdRequestView {
	return domain.AdRequestView{
		AdRequest: domain.AdRequest{
			ID:             7,
			OwnerID:        1,
			Description:    "Banner ad",
			TargetAudience: 5000,
			Tags:           "tech,finance",
			Price:          49.99,
		},
		OwnerName: "@alice",
	}
}

func sampleChannel() domain.ChannelView {
	return domain.ChannelView{
		ChannelListing: domain.ChannelListing{
			ID:           3,
			OwnerID:      2,
			Link:         "@technews",
			Name:         "Tech News",
			PricePerPost: 15,
			Tags:         "tech",
		},
		OwnerName: "@bob",
	}
}

func TestAdRequestsPage(t *testing.T) {
	out := AdRequestsPage([]domain.AdRequestView{sampleRequest()}, 1, 3)

	assert.Contains(t, out, "📋 Рекламные запросы (страница 1/3):")
	assert.Contains(t, out, "📝 Описание: Banner ad")
	assert.Contains(t, out, "👥 ЦА: 5000 чел.")
	assert.Contains(t, out, "🏷️ Метки: tech,finance")
	assert.Contains(t, out, "💰 Цена: $49.99")
	assert.Contains(t, out, "👤 @alice")
	assert.Contains(t, out, "🆔 ID: 7")
	assert.Equal(t, 2, strings.Count(out, pageDivider))
}

func TestAdRequestsPageEmpty(t *testing.T) {
	assert.Equal(t, "Нет запросов", AdRequestsPage(nil, 1, 0))
}

func TestChannelsPage(t *testing.T) {
	out := ChannelsPage([]domain.ChannelView{sampleChannel()}, 2, 2)

	assert.Contains(t, out, "📺 Каналы (страница 2/2):")
	assert.Contains(t, out, "📢 Канал: Tech News (@technews)")
	assert.Contains(t, out, "💰 Цена: $15.00")
	assert.Contains(t, out, "👤 @bob")
	assert.Contains(t, out, "🆔 ID: 3")
}

func TestChannelsPageEmpty(t *testing.T) {
	assert.Equal(t, "Нет каналов", ChannelsPage(nil, 1, 0))
}

func TestMyAdRequests(t *testing.T) {
	out := MyAdRequests([]domain.AdRequest{sampleRequest().AdRequest})

	assert.Contains(t, out, "📋 Ваши рекламные запросы:")
	assert.Contains(t, out, "🆔7 Описание:Banner ad ЦА:5000 Цена:$49.99")
	assert.Contains(t, out, ownDivider)
}

func TestMyAdRequestsEmpty(t *testing.T) {
	assert.Equal(t, "У вас нет запросов", MyAdRequests(nil))
}

func TestMyChannels(t *testing.T) {
	out := MyChannels([]domain.ChannelListing{sampleChannel().ChannelListing})

	assert.Contains(t, out, "📺 Ваши каналы:")
	assert.Contains(t, out, "🆔3 Tech News(@technews) Цена:$15.00")
}

func TestMyChannelsEmpty(t *testing.T) {
	assert.Equal(t, "У вас нет каналов", MyChannels(nil))
}

func TestWelcome(t *testing.T) {
	out := Welcome("Alice A", domain.RoleAdvertiser)
	assert.Contains(t, out, "С возвращением, Alice A!")
	assert.Contains(t, out, "рекламодатель")

	assert.Contains(t, Welcome("Bob", domain.RoleSeller), "продавец")
}

func TestHelp(t *testing.T) {
	out := Help("Alice A", "alice", domain.RoleAdvertiser, true)
	assert.Contains(t, out, "👤 Пользователь: Alice A (alice)")
	assert.Contains(t, out, "🔖 Ваша роль: advertiser")
	assert.Contains(t, out, "/add_request")
	assert.Contains(t, out, "/my_channels")

	unknown := Help("Bob", "", domain.Role(""), false)
	assert.Contains(t, unknown, "🔖 Ваша роль: UNKNOWN")
	assert.Contains(t, unknown, "(—)")
}

func TestDeleteConfirmations(t *testing.T) {
	assert.Equal(t, "✅ Запрос ID:5 удалён!", RequestDeleted(5))
	assert.Equal(t, "✅ Канал ID:9 удалён!", ChannelDeleted(9))
}

func TestStats(t *testing.T) {
	out := Stats(20, 12, 4)
	assert.Contains(t, out, "Пользователей: 20")
	assert.Contains(t, out, "Рекламных запросов: 12")
	assert.Contains(t, out, "Каналов: 4")
}
