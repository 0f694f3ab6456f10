// Package services contains application services for the PlanPlant client.
// Each service runs one or more gateway calls, commits the resulting
// session changes and returns a *client.Error whose text is ready to show
// next to the form that triggered it.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/imagex"
	"github.com/dmitrijs2005/planplant/internal/logging"
)

// Validation texts.
const (
	MsgProfilePictureMissing = "Profile picture missing."
	MsgHomePictureMissing    = "Home picture missing."
)

type options struct {
	now    func() time.Time
	logger logging.Logger
}

type Option func(*options)

// WithClock overrides the time source used for upload file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, logger: logging.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// imageFileName renders <ISO-8601 UTC millis>_<suffix>.png.
func imageFileName(now time.Time, suffix string) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z") + "_" + suffix + ".png"
}

// uploadImage runs the first two steps of an image chain: request a signed
// destination, then PUT the decoded bytes there. Every failure carries
// message. The returned URL is public once the PUT has succeeded.
func uploadImage(ctx context.Context, c client.Client, op, message, fileName, dataURI string) (string, error) {
	data, err := imagex.DecodeDataURI(dataURI)
	if err != nil {
		return "", client.Relabel(err, op, message)
	}

	target, err := c.GetUploadURL(ctx, fileName, client.ImageContentType)
	if err != nil {
		return "", client.Relabel(err, op, message)
	}

	if err := c.Upload(ctx, target.SignedRequest, data); err != nil {
		return "", client.Relabel(err, op, message)
	}
	return target.URL, nil
}
