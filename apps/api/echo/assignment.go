package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/roster"
)

type assignmentApi struct {
	svc       *assignment.Service
	rosterSvc *roster.Service
}

type RemindResponse struct {
	Sent int `json:"sent"`
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, rosterSvc *roster.Service) {
	api := assignmentApi{svc: svc, rosterSvc: rosterSvc}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
	ag.POST("/:id/remind", api.remind)
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	var assignments []assignment.Assignment
	var err error
	if gradeID := ctx.QueryParam("grade"); gradeID != "" {
		assignments, err = api.svc.ListForGrade(ctx.Request().Context(), gradeID)
	} else {
		assignments, err = api.svc.List(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assignmentApi) remind(ctx echo.Context) error {
	n, err := api.rosterSvc.SendReminders(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "sending reminders")
	}
	return ctx.JSON(http.StatusOK, RemindResponse{Sent: n})
}
