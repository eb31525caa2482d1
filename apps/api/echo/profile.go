package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/services/media"
)

type profileApi struct {
	svc       *profile.Service
	mediaOpts media.Options
}

type ProfileResponse struct {
	Configured bool             `json:"configured"`
	Profile    *profile.Profile `json:"profile,omitempty"`
}

func registerProfileAPI(g *echo.Group, svc *profile.Service, mediaOpts media.Options) {
	api := profileApi{svc: svc, mediaOpts: mediaOpts}

	g.GET("", api.retrieve)
	g.POST("", api.setup)
}

// Handlers

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		if errors.Is(err, profile.ErrNotConfigured) {
			return ctx.JSON(http.StatusOK, ProfileResponse{})
		}
		return errors.Wrap(err, "getting profile")
	}
	return ctx.JSON(http.StatusOK, ProfileResponse{Configured: true, Profile: &p})
}

// setup accepts a JSON profile, or a multipart form with the logo as a `schoolLogo` file.
func (api *profileApi) setup(ctx echo.Context) error {
	var data profile.Setup
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		data.Name = ctx.FormValue("name")
		data.AppName = ctx.FormValue("appName")
		if fh, err := ctx.FormFile("schoolLogo"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return errors.Wrap(err, "opening logo")
			}
			defer f.Close()
			if data.Logo, err = media.EncodeImage(f, api.mediaOpts); err != nil {
				return err
			}
		}
	} else if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to profile.Setup")
	}

	p, err := api.svc.CompleteSetup(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "completing setup")
	}
	return ctx.JSON(http.StatusCreated, ProfileResponse{Configured: true, Profile: &p})
}
