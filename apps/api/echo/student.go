package echoapi

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/spreadsheet"
)

const (
	maxImportBytes = 5 * 1024 * 1024
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type studentApi struct {
	svc       *student.Service
	rosterSvc *roster.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service, rosterSvc *roster.Service) {
	api := studentApi{svc: svc, rosterSvc: rosterSvc}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/import", api.bulkImport)

	// detail endpoints
	sg.PATCH("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/missing", api.missingWork)
}

// Handlers

// query lists all students, or those of the `grade` filtered by name with `search` (`ci` for case-insensitive).
func (api *studentApi) query(ctx echo.Context) error {
	var students []student.Student
	var err error
	reqCtx := ctx.Request().Context()

	if gradeID := ctx.QueryParam("grade"); gradeID != "" {
		ci, _ := strconv.ParseBool(ctx.QueryParam("ci"))
		students, err = api.svc.Search(reqCtx, gradeID, ctx.QueryParam("search"), ci)
	} else {
		students, err = api.svc.List(reqCtx)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	s, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

// bulkImport reads a csv or xlsx roster from the `file` form field into the `grade` form field's grade.
func (api *studentApi) bulkImport(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening roster")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportBytes+1))
	if err != nil {
		return errors.Wrap(err, "reading roster")
	}
	if len(data) > maxImportBytes {
		return errRosterTooLarge
	}

	var res student.ImportResult
	reqCtx, gradeID := ctx.Request().Context(), ctx.FormValue("grade")
	if mimetype.Detect(data).Is(xlsxMIME) {
		var rows [][]string
		if rows, err = spreadsheet.ReadRoster(bytes.NewReader(data)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "could not read the workbook").SetInternal(err)
		}
		res, err = api.svc.ImportRows(reqCtx, gradeID, rows)
	} else {
		res, err = api.svc.BulkImport(reqCtx, gradeID, string(data))
	}
	if err != nil {
		return errors.Wrap(err, "importing students")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	s, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) missingWork(ctx echo.Context) error {
	assignments, err := api.rosterSvc.MissingWork(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "listing missing work")
	}
	return ctx.JSON(http.StatusOK, assignments)
}
