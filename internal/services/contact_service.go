package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"dealership/internal/models"
	"dealership/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

// ContactInput is a public contact-form submission. Vehicle is free text
// like "2020 Honda Civic" describing which listing the message is about.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=1000"`
	Vehicle string `json:"vehicle"`
}

// ContactService stores inbound messages and serves the admin inbox.
type ContactService struct {
	messageRepo repositories.MessageRepository
	vehicleRepo repositories.VehicleRepository
	validate    *validator.Validate
}

// NewContactService creates a new ContactService.
func NewContactService(messageRepo repositories.MessageRepository, vehicleRepo repositories.VehicleRepository) *ContactService {
	return &ContactService{
		messageRepo: messageRepo,
		vehicleRepo: vehicleRepo,
		validate:    validator.New(),
	}
}

// Submit validates and stores a contact message. When the submission names
// a vehicle, the message is linked to the best inventory match; matching is
// best-effort and a failed match never fails the submit.
func (s *ContactService) Submit(input ContactInput) (*models.Message, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("please fill all required fields: %w", ErrValidation)
	}

	message := &models.Message{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	}

	if text := strings.TrimSpace(input.Vehicle); text != "" {
		if vehicle := s.matchVehicle(text); vehicle != nil {
			message.VehicleID = &vehicle.ID
		}
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// matchVehicle resolves free text to an inventory record, or nil.
func (s *ContactService) matchVehicle(text string) *models.Vehicle {
	match, ok := ParseVehicleText(text)
	if !ok {
		return nil
	}
	vehicle, err := s.vehicleRepo.FindMatch(match)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Error matching vehicle for %q: %v", text, err)
		}
		return nil
	}
	return vehicle
}

// ParseVehicleText splits a free-text vehicle description into an optional
// year, a make and a model. "2020 Honda Civic" parses as year+make+model;
// "Honda Civic" as make+model. Single words are too vague to match.
func ParseVehicleText(text string) (repositories.VehicleMatch, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return repositories.VehicleMatch{}, false
	}

	var match repositories.VehicleMatch
	if yearPattern.MatchString(parts[0]) {
		match.Year, _ = strconv.Atoi(parts[0])
		match.Make = parts[1]
		match.Model = strings.Join(parts[2:], " ")
	} else {
		match.Make = parts[0]
		match.Model = strings.Join(parts[1:], " ")
	}
	return match, true
}

// ListMessages returns the admin inbox, optionally filtered by read state.
func (s *ContactService) ListMessages(status repositories.MessageStatus) ([]models.Message, error) {
	return s.messageRepo.List(status)
}

// GetMessage returns a single message and marks it read, mirroring the
// inbox "viewing marks read" behavior.
func (s *ContactService) GetMessage(id string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !message.IsRead {
		return s.messageRepo.MarkRead(id)
	}
	return message, nil
}

// MarkMessageRead flags a message as read.
func (s *ContactService) MarkMessageRead(id string) (*models.Message, error) {
	return s.messageRepo.MarkRead(id)
}

// DeleteMessage removes a message.
func (s *ContactService) DeleteMessage(id string) error {
	return s.messageRepo.Delete(id)
}
