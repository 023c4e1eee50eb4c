package app

import (
	"encoding/json"
	"fmt"

	"github.com/thatcatcamp/brandaura/internal/frontend"
	"github.com/thatcatcamp/brandaura/internal/notify"
	"github.com/thatcatcamp/brandaura/internal/themes"
)

// RouterPlugin attaches the SPA's generated routes: the theme config the
// UI framework initializes from, and the matching stylesheet
type RouterPlugin struct{}

func (RouterPlugin) Name() string { return "router" }

func (RouterPlugin) Install(a *App) error {
	body, err := json.Marshal(a.theme)
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := a.host.Handle("theme.json", frontend.StaticContent("application/json; charset=utf-8", body)); err != nil {
		return err
	}

	css := themes.GenerateCSS(a.theme)
	return a.host.Handle("theme.css", frontend.StaticContent("text/css; charset=utf-8", []byte(css)))
}

// NotificationPlugin starts the toast service and exposes its event stream
type NotificationPlugin struct{}

func (NotificationPlugin) Name() string { return "notifications" }

func (NotificationPlugin) Install(a *App) error {
	a.notifier = notify.NewHub(a.logger)
	return a.host.Handle("notifications", notify.StreamHandler(a.notifier))
}
