package gradeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core/grade"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, grade.ErrNotFound.Error())

type gradeAPI struct {
	svc *grade.Service
}

func registerGradeAPI(app *echo.Echo, svc *grade.Service) {
	api := gradeAPI{svc: svc}

	g := app.Group("/api/grades")
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/semesters", api.querySemesters)
	g.GET("/courses", api.queryCourses)
	g.GET("/:id", api.retrieve)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *gradeAPI) query(ctx echo.Context) error {
	filter := new(grade.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return helpers.ListResponse(ctx, []grade.Grade{}, 0)
	}
	filter.Clean()

	grades, err := api.svc.Query(ctx.Request().Context(), *filter, true /* enrich */)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return helpers.ListResponse(ctx, grades, len(grades))
}

func (api *gradeAPI) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	g, err := api.svc.Get(ctx.Request().Context(), id, true /* enrich */)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "getting grade")
	}
	return helpers.DataResponse(ctx, g)
}

func (api *gradeAPI) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}

	res := api.svc.Create(ctx.Request().Context(), data)
	if !res.OK {
		return ctx.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   res.Message,
		})
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"message":      res.Message,
		"data":         echo.Map{"id": res.GradeID},
		"notification": res.Notification,
	})
}

func (api *gradeAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	if err = api.svc.Delete(id); err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "deleting grade")
	}
	return helpers.MessageResponse(ctx, "Grade deleted successfully")
}

func (api *gradeAPI) querySemesters(ctx echo.Context) error {
	semesters, err := api.svc.Semesters()
	if err != nil {
		return errors.Wrap(err, "querying semesters")
	}
	return helpers.DataResponse(ctx, semesters)
}

func (api *gradeAPI) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.Courses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return helpers.DataResponse(ctx, courses)
}
