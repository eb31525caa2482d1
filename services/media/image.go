// Package media turns uploaded images into self-contained data URIs.
package media

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

const DefaultMaxBytes = 5 * 1024 * 1024

var (
	// errors
	ErrImageTooLarge    = errors.New("image must be 5MB or smaller")
	ErrUnsupportedImage = errors.New("image must be a JPEG, PNG or GIF")

	formats = map[string]imaging.Format{
		"image/jpeg": imaging.JPEG,
		"image/png":  imaging.PNG,
		"image/gif":  imaging.GIF,
	}
)

type Options struct {
	MaxBytes     int64 // <= 0 means DefaultMaxBytes
	MaxDimension int   // <= 0 keeps the original size
}

// EncodeImage reads an image from r and returns it as a data URI.
// The size limit applies to the input, before any encoding.
func EncodeImage(r io.Reader, opts Options) (string, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "media.EncodeImage")
	}
	if int64(len(data)) > maxBytes {
		return "", ErrImageTooLarge
	}

	mime := mimetype.Detect(data).String()
	format, ok := formats[mime]
	if !ok {
		return "", ErrUnsupportedImage
	}

	// animated GIFs would lose their frames
	if opts.MaxDimension > 0 && format != imaging.GIF {
		if data, err = fit(data, format, opts.MaxDimension); err != nil {
			return "", err
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// fit scales the image down to fit in a size x size box, keeping its aspect ratio.
func fit(data []byte, format imaging.Format, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	if b := img.Bounds(); b.Dx() <= size && b.Dy() <= size {
		return data, nil
	}

	resized := imaging.Fit(img, size, size, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, errors.Wrap(err, "media.fit")
	}
	return buf.Bytes(), nil
}
