package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/render"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type UpdateStorage interface {
	Updates(ctx context.Context) ([]model.Update, error)
}

// Server - локальный preview дашборда. Выбор фильтра приходит в ?source=,
// каждый запрос получает свой View поверх общего неизменяемого Page.
type Server struct {
	storage  UpdateStorage
	renderer *render.Renderer
	linker   render.QueryLinker
	page     atomic.Pointer[dashboard.Page]
	echo     *echo.Echo
}

func New(storage UpdateStorage, renderer *render.Renderer) *Server {
	s := &Server{
		storage:  storage,
		renderer: renderer,
		linker:   render.QueryLinker{BasePath: "/"},
	}
	s.page.Store(&dashboard.Page{})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[INFO] %s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))

	e.GET("/", s.handleIndex)
	e.GET("/updates.json", s.handleUpdates)
	e.GET("/healthz", s.handleHealth)

	s.echo = e

	return s
}

// Reload перечитывает снапшот и атомарно подменяет страницу
func (s *Server) Reload(ctx context.Context) error {
	updates, err := s.storage.Updates(ctx)
	if err != nil {
		return err
	}

	page := dashboard.Compose(updates)
	s.page.Store(&page)

	log.Printf("[INFO] loaded %d updates from %d sources", len(page.Updates), len(page.Sources))

	return nil
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run слушает addr до отмены контекста
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)

	go func() {
		log.Printf("[INFO] preview server listening on %s", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return ctx.Err()
}

func (s *Server) view(c echo.Context) *dashboard.View {
	view := dashboard.NewView(*s.page.Load())

	values := c.QueryParams()
	if _, present := values["source"]; present {
		view.Select(dashboard.ParseFilter(values.Get("source"), true))
	}

	return view
}

func (s *Server) handleIndex(c echo.Context) error {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, s.view(c), s.linker); err != nil {
		return err
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleUpdates(c echo.Context) error {
	view := s.view(c)

	return c.JSON(http.StatusOK, map[string]any{
		"selected": view.Selected().Label(),
		"sources":  view.Page().Sources,
		"updates":  view.Visible(),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
