package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/catalog"
)

// CatalogHandler GET /api/catalog — catálogo estático de servicios.
func CatalogHandler(c *fiber.Ctx) error {
	return c.JSON(dto.CatalogResponse{
		BaseServices:  catalog.BaseServices,
		AddonServices: catalog.AddonServices,
	})
}
