package application

import (
	"context"
	"errors"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
)

var ErrAppNotFound = errors.New("application not found in context")

func WithApp(ctx context.Context, app Application) context.Context {
	return context.WithValue(ctx, constants.AppKey, app)
}

func UseApp(ctx context.Context) (Application, error) {
	app, ok := ctx.Value(constants.AppKey).(Application)
	if !ok {
		return nil, ErrAppNotFound
	}
	return app, nil
}
