package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Application-Specific Feature Usage Metrics
	BookmarkCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_bookmark_created_total",
		Help: "Total number of bookmarks created.",
	})
	BookmarkDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_bookmark_deleted_total",
		Help: "Total number of bookmarks deleted.",
	})
	CategoryCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_category_created_total",
		Help: "Total number of categories created.",
	})
	CategoryCountsRecalculatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_category_counts_recalculated_total",
		Help: "Total number of category bookmark counts rewritten.",
	})
	MenuBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_menu_builds_total",
		Help: "Total number of navigation menus built.",
	})
	SlugCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_slug_cache_lookups_total",
		Help: "Slug to category name cache lookups.",
	}, []string{"result"}) // result: "hit", "miss" or "error"
)
