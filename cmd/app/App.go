package app

import (
	"sync"

	"socketCanvas/configs"
	"socketCanvas/internal/handlers"
	"socketCanvas/internal/servers/http"
	"socketCanvas/internal/session"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.configs = configs.GetConfig()

	registry := session.NewRegistry(app.configs.Canvas.SpawnArea)
	chatLog := session.NewChatLog()
	history := session.NewHistoryStore(
		app.configs.Canvas.RetentionWindow,
		app.configs.Canvas.ExpiryPollInterval,
	)

	dispatcher := session.NewDispatcher(registry, chatLog, history)
	go dispatcher.Run()

	canvasHandler := handlers.NewSocketCanvasHandler(dispatcher, app.configs)

	http.NewHttpServer(app.configs, canvasHandler, dispatcher).Run()
}
