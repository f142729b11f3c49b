// Package metrics defines and registers all custom Prometheus metrics for the
// Platefull recipe API. It is the single source of truth for metric names,
// labels, and help strings.
//
// The promauto constructors register everything with the default registry at
// package init, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "platefull"

// RecipesCreatedTotal counts newly published recipes.
var RecipesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of recipes created.",
	},
)

// MarksTotal counts favorite, cart, and subscription toggles.
// Labels:
//   - kind: "favorite", "cart", or "subscription"
//   - action: "add" or "remove"
var MarksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marks_total",
		Help:      "Total number of favorite/cart/subscription changes, by kind and action.",
	},
	[]string{"kind", "action"},
)

// ShoppingListExportsTotal counts shopping list downloads.
var ShoppingListExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shopping_list_exports_total",
		Help:      "Total number of shopping list exports.",
	},
)

// ShoppingListBuildDuration measures how long the shopping list aggregation
// takes, from cart lookup to rendered document.
var ShoppingListBuildDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "shopping_list_build_duration_seconds",
		Help:      "Duration of shopping list aggregation and rendering.",
		Buckets:   prometheus.DefBuckets,
	},
)

// UsersRegisteredTotal counts new account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)
