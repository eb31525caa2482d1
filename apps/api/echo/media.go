package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/services/media"
)

type ImageResponse struct {
	DataURI string `json:"dataUri"`
}

func registerImageAPI(g *echo.Group, opts media.Options) {
	g.POST("/images", func(ctx echo.Context) error {
		fh, err := ctx.FormFile("file")
		if err != nil {
			return errMissingFile
		}
		f, err := fh.Open()
		if err != nil {
			return errors.Wrap(err, "opening image")
		}
		defer f.Close()

		uri, err := media.EncodeImage(f, opts)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, ImageResponse{DataURI: uri})
	})
}
