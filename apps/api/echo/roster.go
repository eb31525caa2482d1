package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/services/spreadsheet"
)

type rosterApi struct {
	svc *roster.Service
}

func registerRosterAPI(g *echo.Group, svc *roster.Service) {
	api := rosterApi{svc: svc}

	g.GET("/overview", api.overview)
	g.GET("/overview.xlsx", api.export)
}

// Handlers

func (api *rosterApi) overview(ctx echo.Context) error {
	groups, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building overview")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *rosterApi) export(ctx echo.Context) error {
	groups, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building overview")
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, xlsxMIME)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="missing-work.xlsx"`)
	res.WriteHeader(http.StatusOK)
	return errors.Wrap(spreadsheet.WriteOverview(res, groups), "exporting overview")
}
