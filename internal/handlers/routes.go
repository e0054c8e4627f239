package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Page    *PageHandler
	Analyze *AnalyzeHandler
	Result  *ResultHandler
	Health  *HealthHandler
}

// Register mounts the page and API routes on app.
func Register(app *fiber.App, h Handlers) {
	app.Get("/", h.Page.HandleIndex)
	app.Get("/sample-jd", h.Page.HandleSampleJD)
	app.Post("/analyze", h.Analyze.HandleAnalyze)
	app.Get("/results/:id", h.Result.HandleResultsPage)
	app.Get("/results/:id/print", h.Result.HandlePrintPage)

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.HandleHealth)
	api.Get("/results/:id", h.Result.HandleGetResult)
}
