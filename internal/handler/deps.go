package handler

import (
	"github.com/MessiahAndrw/Collaborate/internal/app/collab"
	"github.com/MessiahAndrw/Collaborate/internal/app/settings"
	"github.com/MessiahAndrw/Collaborate/internal/configs"
)

// AppDeps bundles what the HTTP layer needs to serve connections.
type AppDeps struct {
	Manager    *collab.Manager
	Dispatcher *collab.Dispatcher
	Config     *configs.AppConfig
	Global     settings.Global
}
