// Package bot wires marketplace handlers into the Telegram runtime:
// command registration, callback decoding, and route assembly.
package bot

import (
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/findyourad/core/config"
	tg "github.com/m3rciful/findyourad/core/telegram"
	cb "github.com/m3rciful/findyourad/core/telegram/callbacks"
	"github.com/m3rciful/findyourad/core/telegram/commands"
	"github.com/m3rciful/findyourad/core/telegram/router"
	"github.com/m3rciful/findyourad/internal/render"
)

// BuildRegistry declares every command and callback of the marketplace bot.
func BuildRegistry(h *Handlers) *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Запуск бота и выбор роли",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Справка по командам",
	})
	reg.RegisterCommand("/set_role", commands.Command{
		Handler:     h.SetRole,
		Description: "Сменить роль (advertiser|seller)",
	})
	reg.RegisterCommand("/add_request", commands.Command{
		Handler:     h.AddRequest,
		Description: "Создать рекламный запрос",
	})
	reg.RegisterCommand("/add_channel", commands.Command{
		Handler:     h.AddChannel,
		Description: "Добавить свой канал",
	})
	reg.RegisterCommand("/view_requests", commands.Command{
		Handler:     h.ViewRequests,
		Description: "Просмотреть запросы рекламодателей",
	})
	reg.RegisterCommand("/view_channels", commands.Command{
		Handler:     h.ViewChannels,
		Description: "Просмотреть список каналов",
	})
	reg.RegisterCommand("/my_requests", commands.Command{
		Handler:     h.MyRequests,
		Description: "Показать и удалить свои запросы",
	})
	reg.RegisterCommand("/my_channels", commands.Command{
		Handler:     h.MyChannels,
		Description: "Показать и удалить свои каналы",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Статистика биржи",
		AdminOnly:   true,
	})

	reg.SetTextFallback(func(c tele.Context) error {
		return c.Send(render.UnknownCommand)
	})

	for _, key := range []string{
		KeyRole,
		KeyRequestsPage,
		KeyChannelsPage,
		KeyDeleteReq,
		KeyDeleteChan,
		KeyMyRequests,
		KeyMyChannels,
		KeyShowMenu,
	} {
		_ = reg.RegisterCallback(key, actionHandler(h, key))
	}

	return reg
}

// actionHandler decodes the payload under a fixed key and executes it.
// Malformed payloads are possible on the wire (stale or forged buttons)
// and surface as errors for the wire summary rather than user replies.
func actionHandler(h *Handlers, key string) tele.HandlerFunc {
	return func(c tele.Context) error {
		action, err := DecodeAction(key, cb.CallbackPayload(c))
		if err != nil {
			return err
		}
		return h.HandleAction(c, action)
	}
}

// Routes assembles all wrapped routes for RunTelegram.
func Routes(reg *tg.Registry, cfg *coreconfig.Config) []tg.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	if fallback := reg.TextFallback(); fallback != nil {
		routes = append(routes, tg.Route{Endpoint: tele.OnText, Handler: fallback})
	}
	return routes
}
