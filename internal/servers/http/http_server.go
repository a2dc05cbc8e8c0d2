package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"socketCanvas/configs"
	"socketCanvas/internal/handlers"
	"socketCanvas/internal/models"
	"socketCanvas/internal/msgs"
	"socketCanvas/internal/session"
)

type HttpServer struct {
	cfg        *configs.Config
	router     *gin.Engine
	canvas     *handlers.SocketCanvasHandler
	dispatcher *session.Dispatcher
}

func NewHttpServer(
	cfg *configs.Config,
	canvas *handlers.SocketCanvasHandler,
	dispatcher *session.Dispatcher,
) *HttpServer {
	return &HttpServer{
		cfg:        cfg,
		canvas:     canvas,
		dispatcher: dispatcher,
	}
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRoutes()
	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	gin.SetMode(gin.ReleaseMode)
	hs.router = gin.New()
	hs.router.Use(gin.Recovery())
}

func (hs *HttpServer) setupRoutes() {
	hs.router.GET("/health", hs.health)
	hs.router.GET("/ws", hs.canvas.HandleSocketCanvasRoute)
}

func (hs *HttpServer) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgServerRunning,
	})
}

func (hs *HttpServer) startServer() *http.Server {
	server := &http.Server{
		Addr:    hs.cfg.Server.Port,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %s", hs.cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := hs.dispatcher.Shutdown(5 * time.Second); err != nil {
		log.Printf("Dispatcher shutdown: %v", err)
	}

	log.Println("Server exiting")
}
