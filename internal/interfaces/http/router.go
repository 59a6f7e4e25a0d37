package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale *sales.CreateSaleUseCase
	Engine     *sales.StatusTransitionEngine
	Query      *sales.SaleQueryUseCase
	Comments   *sales.CommentUseCase
	JWTSecret  string
	Timeout    time.Duration
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ventas (Bearer Token si JWT_SECRET está configurado)
	ventas := api.Group("/ventas", ActorMiddleware(deps.JWTSecret))
	saleHandler := NewSaleHandler(deps.CreateSale, deps.Engine, deps.Query, deps.Comments, deps.Timeout, deps.Log)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Patch("/:id/estado", saleHandler.UpdateCommercialState)
	ventas.Patch("/:id/logistica", saleHandler.UpdateLogisticsState)
	ventas.Get("/:id/historial", saleHandler.History)
	ventas.Post("/:id/comentarios", saleHandler.AddComment)
	ventas.Get("/:id/comentarios", saleHandler.ListComments)
}
