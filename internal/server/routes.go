package server

import (
	"warehouse/internal/config"
	"warehouse/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Products.RegisterRoutes(e, cfg, userRepo)
	h.Categories.RegisterRoutes(e, cfg, userRepo)
	h.Operations.RegisterRoutes(e, cfg, userRepo)
	h.Reports.RegisterRoutes(e, cfg, userRepo)
}
