package studentapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/student"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, student.ErrNotFound.Error())

type studentAPI struct {
	svc *student.Service
}

func registerStudentAPI(app *echo.Echo, svc *student.Service) {
	api := studentAPI{svc: svc}

	g := app.Group("/api/students")
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/majors", api.queryMajors)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *studentAPI) query(ctx echo.Context) error {
	search := core.CleanString(ctx.QueryParam("search"))
	major := core.CleanString(ctx.QueryParam("major"))

	var students []student.Student
	var err error
	switch {
	case search != "":
		students, err = api.svc.Search(search)
	case major != "":
		students, err = api.svc.FilterByMajor(major)
	default:
		students, err = api.svc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return helpers.ListResponse(ctx, students, len(students))
}

func (api *studentAPI) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	std, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return helpers.DataResponse(ctx, std)
}

func (api *studentAPI) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	std, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    echo.Map{"id": std.ID},
	})
}

func (api *studentAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Student updated successfully",
		"data":    std,
	})
}

func (api *studentAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	if err = api.svc.Delete(id); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return helpers.MessageResponse(ctx, "Student deleted successfully")
}

func (api *studentAPI) queryMajors(ctx echo.Context) error {
	majors, err := api.svc.Majors()
	if err != nil {
		return errors.Wrap(err, "querying majors")
	}
	return helpers.DataResponse(ctx, majors)
}
