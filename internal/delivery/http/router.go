package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"scheduler/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, notifyController *controllers.NotifyController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("PUT /events", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events", eventController.DeleteEvent)
	mux.HandleFunc("GET /events/calendar", eventController.CalendarGrid)

	// Digest trigger: GET for cron and client polling, POST kept for
	// backwards compatibility.
	mux.HandleFunc("GET /notify", notifyController.Notify)
	mux.HandleFunc("POST /notify", notifyController.Notify)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
