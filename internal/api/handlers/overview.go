package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/resources"
)

// OverviewHandler backs the dashboard landing page: per-resource totals
// for the stat cards and a creator status breakdown for the chart. Counts
// come from page-1 list metadata, so they share cache entries with the
// list screens.
type OverviewHandler struct {
	svc *resources.Service
}

func NewOverviewHandler(svc *resources.Service) *OverviewHandler {
	return &OverviewHandler{svc: svc}
}

func (h *OverviewHandler) Overview(c *gin.Context) {
	token, _ := middleware.GetAccessToken(c)
	ctx := c.Request.Context()

	totals := map[string]int{}
	var failed []string
	for _, name := range resources.Names() {
		def, _ := resources.Lookup(name)
		page, err := h.svc.ListPage(ctx, def, token, 1, "", "all")
		if err != nil {
			failed = append(failed, name)
			continue
		}
		totals[name] = page.Meta.Total
	}

	creatorStatus := map[string]int{}
	if def, ok := resources.Lookup("creator"); ok {
		for _, status := range def.Statuses {
			page, err := h.svc.ListPage(ctx, def, token, 1, "", status)
			if err != nil {
				continue
			}
			creatorStatus[status] = page.Meta.Total
		}
	}

	resp := gin.H{"totals": totals, "creatorStatus": creatorStatus}
	if len(failed) > 0 {
		resp["failed"] = failed
	}
	c.JSON(http.StatusOK, resp)
}
