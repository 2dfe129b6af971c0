package registration

import (
	"context"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/composables"
)

// Source identifies the client whose request caused a mutation. Zero when
// the mutation ran outside a request.
type Source struct {
	IP        string
	UserAgent string
}

func NewSource(ctx context.Context) Source {
	params, ok := composables.UseParams(ctx)
	if !ok {
		return Source{}
	}
	return Source{
		IP:        params.IP,
		UserAgent: params.UserAgent,
	}
}

// CreatedEvent is published after the backend accepts a new record. Data
// holds the submitted entity without a server identifier; the follow-up
// cache refresh picks up the stored record.
type CreatedEvent struct {
	Source Source
	Data   Registration
}

// UpdatedEvent is published after a successful full replacement.
type UpdatedEvent struct {
	Source Source
	Result Registration
}

// DeletedEvent is published after a confirmed deletion.
type DeletedEvent struct {
	Source Source
	Result Registration
}
