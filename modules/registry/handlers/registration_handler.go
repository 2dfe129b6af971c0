package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
)

// RegistrationEventsHandler writes an audit line for every mutation the
// backend accepted.
type RegistrationEventsHandler struct {
	logger *logrus.Logger
}

func RegisterRegistrationEventHandlers(app application.Application) {
	handler := &RegistrationEventsHandler{
		logger: configuration.Use().Logger(),
	}
	app.EventPublisher().Subscribe(handler.onCreated)
	app.EventPublisher().Subscribe(handler.onUpdated)
	app.EventPublisher().Subscribe(handler.onDeleted)
}

func (h *RegistrationEventsHandler) onCreated(event registration.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"plate_no": event.Data.PlateNo(),
		"owner_id": event.Data.OwnerID(),
		"ip":       event.Source.IP,
	}).Info("registration created")
}

func (h *RegistrationEventsHandler) onUpdated(event registration.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"registration_id": event.Result.ID(),
		"plate_no":        event.Result.PlateNo(),
		"ip":              event.Source.IP,
	}).Info("registration updated")
}

func (h *RegistrationEventsHandler) onDeleted(event registration.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"registration_id": event.Result.ID(),
		"plate_no":        event.Result.PlateNo(),
		"ip":              event.Source.IP,
	}).Info("registration deleted")
}
