// Package render builds the plain-text message bodies shown to users.
// All user-facing copy lives here so handlers stay wiring-only.
package render

import (
	"fmt"
	"strings"

	"github.com/m3rciful/findyourad/internal/domain"
)

const (
	pageDivider = "══════════════════════════════"
	ownDivider  = "════════════════════"
)

// AdRequestsPage renders one browse page of ad requests with its header.
// An empty page renders the empty-collection notice instead.
func AdRequestsPage(records []domain.AdRequestView, page, total int) string {
	if len(records) == 0 {
		return "Нет запросов"
	}
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, fmt.Sprintf(
			"\n📝 Описание: %s\n"+
				"👥 ЦА: %d чел.\n"+
				"🏷️ Метки: %s\n"+
				"💰 Цена: $%.2f\n"+
				"👤 %s\n"+
				"🆔 ID: %d",
			rec.Description, rec.TargetAudience, rec.Tags, rec.Price, rec.OwnerName, rec.ID,
		))
	}
	header := fmt.Sprintf("📋 Рекламные запросы (страница %d/%d):", page, total)
	return header + wrapPage(blocks)
}

// ChannelsPage renders one browse page of channel listings with its header.
func ChannelsPage(records []domain.ChannelView, page, total int) string {
	if len(records) == 0 {
		return "Нет каналов"
	}
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, fmt.Sprintf(
			"\n📢 Канал: %s (%s)\n"+
				"🏷️ Метки: %s\n"+
				"💰 Цена: $%.2f\n"+
				"👤 %s\n"+
				"🆔 ID: %d",
			rec.Name, rec.Link, rec.Tags, rec.PricePerPost, rec.OwnerName, rec.ID,
		))
	}
	header := fmt.Sprintf("📺 Каналы (страница %d/%d):", page, total)
	return header + wrapPage(blocks)
}

func wrapPage(blocks []string) string {
	return "\n\n" + pageDivider + strings.Join(blocks, "\n\n") + "\n\n" + pageDivider
}

// MyAdRequests renders the caller's own ad requests in compact form.
func MyAdRequests(records []domain.AdRequest) string {
	if len(records) == 0 {
		return "У вас нет запросов"
	}
	var b strings.Builder
	b.WriteString("📋 Ваши рекламные запросы:\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "🆔%d Описание:%s ЦА:%d Цена:$%.2f\n%s\n",
			rec.ID, rec.Description, rec.TargetAudience, rec.Price, ownDivider)
	}
	return b.String()
}

// MyChannels renders the caller's own channel listings in compact form.
func MyChannels(records []domain.ChannelListing) string {
	if len(records) == 0 {
		return "У вас нет каналов"
	}
	var b strings.Builder
	b.WriteString("📺 Ваши каналы:\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "🆔%d %s(%s) Цена:$%.2f\n%s\n",
			rec.ID, rec.Name, rec.Link, rec.PricePerPost, ownDivider)
	}
	return b.String()
}

// Welcome greets a returning user whose role is already known.
func Welcome(fullName string, role domain.Role) string {
	return fmt.Sprintf(
		"С возвращением, %s!\nВаша роль: %s\nИспользуйте /help",
		fullName, RoleName(role),
	)
}

// WelcomeNewcomer invites a first-time user to pick a role.
const WelcomeNewcomer = "Добро пожаловать на биржу рекламы FindYourAd! Выберите роль:"

// Help renders the command reference with the caller's identity and role.
func Help(fullName, username string, role domain.Role, hasRole bool) string {
	shownRole := "UNKNOWN"
	if hasRole {
		shownRole = string(role)
	}
	if username == "" {
		username = "—"
	}
	return fmt.Sprintf(
		"Справка по командам бота FindYourAd:\n\n"+
			"👤 Пользователь: %s (%s)\n"+
			"🔖 Ваша роль: %s\n\n"+
			"📚 Общие команды:\n"+
			"/start — запуск бота и выбор/смена роли.\n"+
			"/help — эта справка.\n"+
			"/set_role <advertiser|seller> — сменить роль.\n\n"+
			"📝 Команды для рекламодателя (advertiser):\n"+
			"/add_request 'Описание' АудиторияЧисло 'Метка1,Метка2' Цена — создать рекламный запрос.\n"+
			"/view_channels — просмотреть список каналов.\n"+
			"/my_requests — показать и удалить свои запросы.\n\n"+
			"📺 Команды для продавца каналов (seller):\n"+
			"/add_channel @канал 'Название' Цена 'Метка1,Метка2' — добавить свой канал.\n"+
			"/view_requests — просмотреть запросы рекламодателей.\n"+
			"/my_channels — показать и удалить свои каналы.",
		fullName, username, shownRole,
	)
}

// Stats renders marketplace totals for the admin command.
func Stats(users, adRequests, channels int) string {
	return fmt.Sprintf(
		"📊 Статистика FindYourAd:\n\n"+
			"👥 Пользователей: %d\n"+
			"📝 Рекламных запросов: %d\n"+
			"📺 Каналов: %d",
		users, adRequests, channels,
	)
}

// RoleName localizes a role for user-facing text.
func RoleName(role domain.Role) string {
	if role == domain.RoleAdvertiser {
		return "рекламодатель"
	}
	return "продавец"
}

// Confirmation and usage copy shared by handlers.
const (
	RequestAdded      = "Запрос успешно добавлен!"
	ChannelAdded      = "Канал успешно добавлен!"
	AddRequestUsage   = "Формат: /add_request 'Описание' АудиторияЧисло 'Метка1,Метка2' Цена"
	AddChannelUsage   = "Формат: /add_channel @канал 'Название' Цена 'Метка1,Метка2'"
	SetRoleUsage      = "Используйте: /set_role advertiser или /set_role seller"
	AdvertisersOnly   = "Только рекламодатели"
	SellersOnly       = "Только продавцы"
	AddAdvertiserOnly = "Только рекламодатели могут добавлять запросы."
	AddSellerOnly     = "Только продавцы могут добавлять каналы."
	RequestFailed     = "Ошибка при обработке запроса. Попробуйте ещё раз."
	UnknownCommand    = "Неизвестная команда. Используйте /help"
)

// RequestDeleted confirms an ad request removal.
func RequestDeleted(id int64) string {
	return fmt.Sprintf("✅ Запрос ID:%d удалён!", id)
}

// ChannelDeleted confirms a channel listing removal.
func ChannelDeleted(id int64) string {
	return fmt.Sprintf("✅ Канал ID:%d удалён!", id)
}
