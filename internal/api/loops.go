package api

import (
	"net/http"

	"github.com/controlkit/pidloop/internal/loops"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerLoopEndpoints(rest *echo.Echo) {
	group := rest.Group("/loop")

	group.GET("/", getLoops)
	group.GET("/:"+urlParamId+"/", getLoop)
}

// returns the snapshots of all currently configured loops
func getLoops(c echo.Context) error {
	data := map[string]loops.Snapshot{}
	for entry := range loops.LoopMap.IterBuffered() {
		data[entry.Key] = entry.Val.Snapshot()
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func getLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := loops.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, reprint.This(loop.Snapshot()), indentationChar)
}
