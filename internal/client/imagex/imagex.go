// Package imagex turns picked files and captured frames into the data URIs
// the pages hold, and back into bytes for upload.
package imagex

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg" // register decoder

	"golang.org/x/image/draw"
)

// User-visible validation errors.
var (
	ErrWrongFileType = errors.New("Wrong file type")
	ErrUnableToLoad  = errors.New("Unable to load image")
)

var ErrInvalidDataURI = errors.New("invalid data URI")

const PNG = "image/png"

// Size is the side of the square every loaded picture is scaled to.
const Size = 400

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// ValidateExtension accepts .png, .jpg and .jpeg in any case.
func ValidateExtension(path string) error {
	if !allowedExt[strings.ToLower(filepath.Ext(path))] {
		return ErrWrongFileType
	}
	return nil
}

func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the payload of a data:<mime>;base64,<payload> URI.
func DecodeDataURI(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, nil
}

// centerSquare returns the largest square of r sharing its centre.
func centerSquare(r image.Rectangle) image.Rectangle {
	side := min(r.Dx(), r.Dy())
	x := r.Min.X + (r.Dx()-side)/2
	y := r.Min.Y + (r.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

// SquarePNG crops any registered image format to its centre square,
// scales it to size x size and encodes it as PNG.
func SquarePNG(data []byte, size int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerSquare(src.Bounds()), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFile reads an image from disk and returns it as a Size x Size PNG
// data URI, cropped to its centre square.
// A bad extension gives ErrWrongFileType; anything unreadable or
// undecodable gives ErrUnableToLoad.
func LoadFile(path string) (string, error) {
	if err := ValidateExtension(path); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnableToLoad, err)
	}
	data, err := SquarePNG(raw, Size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnableToLoad, err)
	}
	return EncodeDataURI(PNG, data), nil
}
