package bot

import (
	"errors"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/findyourad/core/telegram/helpers"
	"github.com/m3rciful/findyourad/core/telegram/keyboard"
	"github.com/m3rciful/findyourad/internal/domain"
	"github.com/m3rciful/findyourad/internal/render"
	"github.com/m3rciful/findyourad/internal/service"
)

// Handlers binds marketplace operations to Telegram endpoints.
// Each handler mutates at most the single record its action names and
// always answers the triggering chat.
type Handlers struct {
	svc *service.Marketplace
}

// NewHandlers wires handlers over the marketplace service.
func NewHandlers(svc *service.Marketplace) *Handlers {
	return &Handlers{svc: svc}
}

// Start greets the user. Known users see their role, newcomers pick one.
func (h *Handlers) Start(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	if role, ok := h.svc.RoleOf(ctx, user.ID); ok {
		return helpers.SendText(c, render.Welcome(fullName(user), role))
	}

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Я рекламодатель", Unique: KeyRole, Data: string(domain.RoleAdvertiser)},
		{Text: "Я продавец каналов", Unique: KeyRole, Data: string(domain.RoleSeller)},
	})
	return helpers.SendKeyboard(c, render.WelcomeNewcomer, markup)
}

// Help shows the command reference plus role-appropriate shortcut buttons.
func (h *Handlers) Help(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	role, ok := h.svc.RoleOf(ctx, user.ID)
	text := render.Help(fullName(user), user.Username, role, ok)
	markup := menuKeyboard(role, ok)
	if markup == nil {
		return helpers.SendText(c, text)
	}
	return helpers.SendKeyboard(c, text, markup)
}

// SetRole switches the caller's role from a command argument.
func (h *Handlers) SetRole(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return helpers.SendText(c, render.SetRoleUsage)
	}
	role, err := domain.ParseRole(args[0])
	if err != nil {
		return helpers.SendText(c, render.SetRoleUsage)
	}
	return h.applyRole(c, role)
}

// applyRole persists the role and re-renders the menu, shared between
// the /set_role command and the role selection buttons.
func (h *Handlers) applyRole(c tele.Context, role domain.Role) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}
	if err := h.svc.SetRole(ctx, user.ID, usernameTag(user), role); err != nil {
		return replyError(c, err, render.SetRoleUsage, "")
	}
	return h.Help(c)
}

// AddRequest creates an ad request from a quoted command line.
func (h *Handlers) AddRequest(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil || c.Message() == nil {
		return nil
	}

	in, err := parseAddRequest(c.Message().Text)
	if err != nil {
		return helpers.SendText(c, render.AddRequestUsage)
	}
	if _, err := h.svc.AddRequest(ctx, user.ID, in); err != nil {
		return replyError(c, err, render.AddRequestUsage, render.AddAdvertiserOnly)
	}
	return helpers.SendText(c, render.RequestAdded)
}

// AddChannel creates a channel listing from a quoted command line.
func (h *Handlers) AddChannel(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil || c.Message() == nil {
		return nil
	}

	in, err := parseAddChannel(c.Message().Text)
	if err != nil {
		return helpers.SendText(c, render.AddChannelUsage)
	}
	if _, err := h.svc.AddChannel(ctx, user.ID, in); err != nil {
		return replyError(c, err, render.AddChannelUsage, render.AddSellerOnly)
	}
	return helpers.SendText(c, render.ChannelAdded)
}

// ViewRequests shows sellers one page of advertiser requests.
func (h *Handlers) ViewRequests(c tele.Context) error {
	return h.showRequestsPage(c, parsePage(c.Args()))
}

// ViewChannels shows advertisers one page of seller channels.
func (h *Handlers) ViewChannels(c tele.Context) error {
	return h.showChannelsPage(c, parsePage(c.Args()))
}

func (h *Handlers) showRequestsPage(c tele.Context, page int) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	p, err := h.svc.BrowseRequests(ctx, user.ID, page)
	if err != nil {
		return replyError(c, err, render.RequestFailed, render.SellersOnly)
	}
	if len(p.Records) == 0 {
		return helpers.SendText(c, render.AdRequestsPage(nil, p.Number, p.Total))
	}
	text := render.AdRequestsPage(p.Records, p.Number, p.Total)
	return helpers.SendKeyboard(c, text, navKeyboard(KeyRequestsPage, p.Number, p.Total))
}

func (h *Handlers) showChannelsPage(c tele.Context, page int) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	p, err := h.svc.BrowseChannels(ctx, user.ID, page)
	if err != nil {
		return replyError(c, err, render.RequestFailed, render.AdvertisersOnly)
	}
	if len(p.Records) == 0 {
		return helpers.SendText(c, render.ChannelsPage(nil, p.Number, p.Total))
	}
	text := render.ChannelsPage(p.Records, p.Number, p.Total)
	return helpers.SendKeyboard(c, text, navKeyboard(KeyChannelsPage, p.Number, p.Total))
}

// MyRequests lists the caller's own ad requests with delete buttons.
func (h *Handlers) MyRequests(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	records, err := h.svc.MyRequests(ctx, user.ID)
	if err != nil {
		return replyError(c, err, render.RequestFailed, render.AdvertisersOnly)
	}
	if len(records) == 0 {
		return helpers.SendText(c, render.MyAdRequests(nil))
	}

	btns := make([]keyboard.InlineBtn, 0, len(records)+1)
	for _, rec := range records {
		key, payload, _ := Action{Kind: ActionDelete, Listing: domain.KindAdRequests, ID: rec.ID}.Encode()
		btns = append(btns, keyboard.InlineBtn{
			Text:   deleteLabel(rec.ID),
			Unique: key,
			Data:   payload,
		})
	}
	btns = append(btns, menuButton())
	return helpers.SendKeyboard(c, render.MyAdRequests(records), keyboard.InlineButtons(btns))
}

// MyChannels lists the caller's own channels with delete buttons.
func (h *Handlers) MyChannels(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	records, err := h.svc.MyChannels(ctx, user.ID)
	if err != nil {
		return replyError(c, err, render.RequestFailed, render.SellersOnly)
	}
	if len(records) == 0 {
		return helpers.SendText(c, render.MyChannels(nil))
	}

	btns := make([]keyboard.InlineBtn, 0, len(records)+1)
	for _, rec := range records {
		key, payload, _ := Action{Kind: ActionDelete, Listing: domain.KindChannels, ID: rec.ID}.Encode()
		btns = append(btns, keyboard.InlineBtn{
			Text:   deleteLabel(rec.ID),
			Unique: key,
			Data:   payload,
		})
	}
	btns = append(btns, menuButton())
	return helpers.SendKeyboard(c, render.MyChannels(records), keyboard.InlineButtons(btns))
}

// Stats reports marketplace totals. Registered admin-only.
func (h *Handlers) Stats(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	stats, err := h.svc.CollectStats(ctx)
	if err != nil {
		return replyError(c, err, render.RequestFailed, "")
	}
	return helpers.SendText(c, render.Stats(stats.Users, stats.AdRequests, stats.Channels))
}

// HandleAction executes a decoded callback button press.
func (h *Handlers) HandleAction(c tele.Context, action Action) error {
	switch action.Kind {
	case ActionRoleSelect:
		return h.applyRole(c, action.Role)
	case ActionPageTurn:
		if action.Listing == domain.KindChannels {
			return h.showChannelsPage(c, action.Page)
		}
		return h.showRequestsPage(c, action.Page)
	case ActionDelete:
		return h.deleteListing(c, action)
	case ActionMyListings:
		if action.Listing == domain.KindChannels {
			return h.MyChannels(c)
		}
		return h.MyRequests(c)
	case ActionShowMenu:
		return h.Help(c)
	}
	return nil
}

// deleteListing removes an owned record, confirms, and re-renders the owned
// list. Pressing a stale button for a foreign or already-deleted record
// skips the confirmation and just re-renders.
func (h *Handlers) deleteListing(c tele.Context, action Action) error {
	ctx := helpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	if action.Listing == domain.KindChannels {
		ok, err := h.svc.DeleteChannel(ctx, user.ID, action.ID)
		if err != nil {
			return replyError(c, err, render.RequestFailed, "")
		}
		if ok {
			_ = helpers.SendText(c, render.ChannelDeleted(action.ID))
		}
		return h.MyChannels(c)
	}

	ok, err := h.svc.DeleteRequest(ctx, user.ID, action.ID)
	if err != nil {
		return replyError(c, err, render.RequestFailed, "")
	}
	if ok {
		_ = helpers.SendText(c, render.RequestDeleted(action.ID))
	}
	return h.MyRequests(c)
}

// replyError converts a service failure into the single user-facing reply.
// Expected user mistakes are answered and swallowed; storage failures are
// answered neutrally and propagated so the wire summary records them.
func replyError(c tele.Context, err error, usage, authMsg string) error {
	var ae *domain.AuthorizationError
	if errors.As(err, &ae) {
		if authMsg == "" {
			if ae.Required == domain.RoleAdvertiser {
				authMsg = render.AdvertisersOnly
			} else {
				authMsg = render.SellersOnly
			}
		}
		return helpers.SendText(c, authMsg)
	}
	if domain.IsValidation(err) {
		return helpers.SendText(c, usage)
	}
	_ = helpers.SendText(c, render.RequestFailed)
	return err
}

// navKeyboard builds the prev/next row plus the menu button for a browse page.
func navKeyboard(pageKey string, page, total int) *tele.ReplyMarkup {
	var nav []keyboard.InlineBtn
	if page > 1 {
		nav = append(nav, keyboard.InlineBtn{Text: "◀ Назад", Unique: pageKey, Data: pageData(page - 1)})
	}
	if page < total {
		nav = append(nav, keyboard.InlineBtn{Text: "Вперед ▶", Unique: pageKey, Data: pageData(page + 1)})
	}

	var rows [][]keyboard.InlineBtn
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, []keyboard.InlineBtn{menuButton()})
	return keyboard.InlineButtonsRows(rows...)
}

// menuKeyboard offers role-specific shortcuts under the help text.
func menuKeyboard(role domain.Role, hasRole bool) *tele.ReplyMarkup {
	if !hasRole {
		return nil
	}
	if role == domain.RoleAdvertiser {
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "Сменить роль на продавца", Unique: KeyRole, Data: string(domain.RoleSeller)},
			{Text: "Просмотреть каналы", Unique: KeyChannelsPage, Data: pageData(1)},
			{Text: "Мои запросы", Unique: KeyMyRequests},
		})
	}
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Сменить роль на рекламодателя", Unique: KeyRole, Data: string(domain.RoleAdvertiser)},
		{Text: "Просмотреть запросы", Unique: KeyRequestsPage, Data: pageData(1)},
		{Text: "Мои каналы", Unique: KeyMyChannels},
	})
}

func menuButton() keyboard.InlineBtn {
	return keyboard.InlineBtn{Text: "Меню", Unique: KeyShowMenu}
}

func pageData(page int) string {
	return strconv.Itoa(page)
}

func deleteLabel(id int64) string {
	return "❌ Удалить " + strconv.FormatInt(id, 10)
}

func fullName(u *tele.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// usernameTag mirrors Telegram's @handle form; empty when the user has none.
func usernameTag(u *tele.User) string {
	if u.Username == "" {
		return ""
	}
	return "@" + u.Username
}
