package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var dashboardOrigins = []string{
	"http://localhost:3000",           // local dev
	"https://boostacart.vercel.app",   // dashboard
	"https://admin.boostacart.app",    // admin console
	"https://www.boostacart.app",      // marketing site
}

// DashboardCORS applies the credentialed origin policy for the merchant
// dashboard and admin console.
func DashboardCORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   dashboardOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

// WidgetCORS allows any storefront origin. The widget script is embedded on
// arbitrary merchant domains, so the public endpoints cannot pin origins.
func WidgetCORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
