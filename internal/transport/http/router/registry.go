package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts its routes on the API group.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Optional: lower priority mounts first. Modules without it default to 100.
type prioritizer interface{ Priority() int }

// mountAll mounts modules in priority order, keeping registration order for ties.
func mountAll(g *gin.RouterGroup, mods []APIModule) {
	mods = append([]APIModule(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(g)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
