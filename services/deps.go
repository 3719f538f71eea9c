package services

import (
	"time"

	"snapbook-backend/utils"

	"go.uber.org/zap"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// Deps are the collaborators every panel manager shares.
type Deps struct {
	Now      Clock
	Location *time.Location
	Logger   *zap.Logger
	IDs      *utils.IDSource
	Images   ImageEncoder
	Avatars  ImageEncoder
	Notifier Notifier
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.IDs == nil {
		d.IDs = utils.NewIDSource(d.Now)
	}
	if d.Images == nil {
		d.Images = NewThumbnailEncoder(PortfolioMaxEdge)
	}
	if d.Avatars == nil {
		d.Avatars = NewThumbnailEncoder(AvatarMaxEdge)
	}
	if d.Notifier == nil {
		d.Notifier = NewLogNotifier(d.Logger)
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Now().In(d.Location)
}
