package server

import (
	"warehouse/internal/config"
	"warehouse/internal/handler"
	"warehouse/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Operations *handler.OperationHandler
	Reports    *handler.ReportHandler
}

func Start(addr string, cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, userRepo, h)

	return e.Start(addr)
}
