package routes

import (
	"net/http"

	"github.com/dcode-github/estate_listing_platform/backend/controllers"
	"github.com/gorilla/mux"
)

// Routes wires every endpoint. Public and protected verbs share paths, so
// the guard wraps individual handlers rather than a subrouter.
func Routes(router *mux.Router, app *controllers.App, guard func(http.Handler) http.Handler) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running. Check '/api/properties' to get all properties"))
	}).Methods("GET")

	// Auth routes
	router.HandleFunc("/api/register", app.RegisterUser()).Methods("POST")
	router.HandleFunc("/api/login", app.LoginUser()).Methods("POST")

	// Property routes
	router.Handle("/api/properties", guard(app.CreateProperty())).Methods("POST")
	router.HandleFunc("/api/properties", app.GetAllProperties()).Methods("GET")
	router.HandleFunc("/api/properties/{id}", app.GetPropertyByID()).Methods("GET")
	router.Handle("/api/properties/{id}", guard(app.UpdateProperty())).Methods("PUT")
	router.Handle("/api/properties/{id}", guard(app.DeleteProperty())).Methods("DELETE")

	// Structured filter search
	router.HandleFunc("/api/filter", app.FilterProperties()).Methods("GET")

	// Favorites routes
	router.Handle("/api/favorites/{propertyId}", guard(app.AddFavorite())).Methods("POST")
	router.Handle("/api/favorites", guard(app.GetFavorites())).Methods("GET")
	router.Handle("/api/favorites/{propertyId}", guard(app.DeleteFavorite())).Methods("DELETE")

	// User search and recommendations
	router.Handle("/api/users/search", guard(app.SearchUser())).Methods("GET")
	router.Handle("/api/recommend/{recipientEmail}/{propertyId}", guard(app.RecommendProperty())).Methods("POST")
	router.Handle("/api/recommendations", guard(app.GetRecommendations())).Methods("GET")
}
