package service

import (
	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/mq"
)

// App bundles the wired dispatch surface: the bus with its transaction
// middleware, plus the request-path collaborators that live outside the
// bus (upload slot issuance, view recording).
type App struct {
	Bus          *bus.Bus
	Videos       *VideoService
	Interactions *InteractionService
	Profiles     *ProfileService
	Uploads      *UploadService
	Views        *ViewRecorder
}

// NewApp builds the bus, registers every handler and hangs the
// collaborators off it. producer may be nil when the queue is not up
// (views then only hit the hot counter).
func NewApp(producer *mq.Producer) *App {
	b := bus.New(db.TransactionMiddleware(db.NewRetryStrategy()))
	app := &App{
		Bus:          b,
		Videos:       NewVideoService(b),
		Interactions: NewInteractionService(b),
		Profiles:     NewProfileService(b),
		Uploads:      NewUploadService(),
	}
	RegisterAll(b, app.Videos, app.Interactions, app.Profiles)
	if producer != nil {
		app.Views = NewViewRecorder(producer)
	}
	return app
}
