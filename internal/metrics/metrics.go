// Package metrics exposes prometheus counters for the HTTP surface and the
// auth flows.
package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrefasa/user-service/internal/apperr"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_service_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "user_service_registrations_total",
		Help: "Successfully registered accounts.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_service_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_service_token_refreshes_total",
		Help: "Refresh-token rotations by outcome.",
	}, []string{"outcome"})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Middleware counts every request after the handler chain ran.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; count the status it will write.
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = apperr.KindOf(err).StatusCode()
			}
		}

		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()

		return err
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
