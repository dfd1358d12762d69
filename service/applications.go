package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/realtime"
)

type ApplyInput struct {
	RoomID      uuid.UUID
	ApplicantID uuid.UUID
	// OwnerID is optional; when set it must match the room's owner.
	OwnerID uuid.UUID
	Message string
}

// SentApplication is an application as its applicant sees it.
type SentApplication struct {
	models.Application
	Room *models.Room
}

// ReceivedApplication is an application as the room owner sees it.
type ReceivedApplication struct {
	models.Application
	Room      *models.Room
	Applicant *models.Profile
}

// Apply files a pending application. A second application for the same
// (room, applicant) is rejected by the store's unique index, not by a prior read.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*models.Application, error) {
	if in.ApplicantID == uuid.Nil {
		return nil, invalid("applicant_id", "is required")
	}
	if in.RoomID == uuid.Nil {
		return nil, invalid("room_id", "is required")
	}

	room, err := s.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if in.OwnerID != uuid.Nil && in.OwnerID != room.OwnerID {
		return nil, invalid("owner_id", "does not match the room's owner")
	}
	if in.ApplicantID == room.OwnerID {
		return nil, invalid("applicant_id", "you cannot apply for your own room")
	}

	app := &models.Application{
		ID:          s.newID(),
		RoomID:      room.ID,
		OwnerID:     room.OwnerID,
		ApplicantID: in.ApplicantID,
		Message:     strings.TrimSpace(in.Message),
		Status:      models.StatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if isDuplicate(err) {
			return nil, conflict("You have already applied for this room!")
		}
		return nil, err
	}

	s.logger.Info("application created", "application_id", app.ID, "room_id", app.RoomID, "applicant_id", app.ApplicantID)
	s.publish(ctx, realtime.Event{
		Type:         realtime.EventInsert,
		Table:        realtime.TableApplications,
		RecordID:     app.ID,
		RoomID:       app.RoomID,
		Participants: []uuid.UUID{app.OwnerID, app.ApplicantID},
		CreatedAt:    app.CreatedAt,
	})
	return app, nil
}

func (s *Service) ListSent(ctx context.Context, applicantID uuid.UUID) ([]SentApplication, error) {
	apps, err := s.repo.ListApplicationsByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomIndex(ctx, applicationRoomIDs(apps))
	if err != nil {
		return nil, err
	}

	out := make([]SentApplication, 0, len(apps))
	for _, a := range apps {
		sa := SentApplication{Application: a}
		if r, ok := rooms[a.RoomID]; ok {
			sa.Room = &r
		}
		out = append(out, sa)
	}
	return out, nil
}

func (s *Service) ListReceived(ctx context.Context, ownerID uuid.UUID) ([]ReceivedApplication, error) {
	apps, err := s.repo.ListApplicationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomIndex(ctx, applicationRoomIDs(apps))
	if err != nil {
		return nil, err
	}
	applicantIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		applicantIDs = append(applicantIDs, a.ApplicantID)
	}
	profiles, err := s.profileIndex(ctx, applicantIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ReceivedApplication, 0, len(apps))
	for _, a := range apps {
		ra := ReceivedApplication{Application: a}
		if r, ok := rooms[a.RoomID]; ok {
			ra.Room = &r
		}
		if p, ok := profiles[a.ApplicantID]; ok {
			ra.Applicant = &p
		}
		out = append(out, ra)
	}
	return out, nil
}

// UpdateStatus moves a pending application to accepted or rejected. Only the
// room owner may do it, and only once: the store update is conditional on
// the row still being pending.
func (s *Service) UpdateStatus(ctx context.Context, appID, callerID uuid.UUID, status string) (*models.Application, error) {
	next, err := models.ParseApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil || !next.Terminal() {
		return nil, invalid("status", "must be accepted or rejected")
	}

	app, err := s.repo.GetApplication(ctx, appID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("application")
		}
		return nil, err
	}
	if app.OwnerID != callerID {
		return nil, forbidden("only the room owner can change this application")
	}
	if !app.Status.CanTransition(next) {
		return nil, conflict("application is already " + string(app.Status))
	}

	changed, err := s.repo.TransitionApplication(ctx, app.ID, models.StatusPending, next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, conflict("application is no longer pending")
	}

	app.Status = next
	s.logger.Info("application status changed", "application_id", app.ID, "status", next)
	return app, nil
}

func applicationRoomIDs(apps []models.Application) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.RoomID)
	}
	return ids
}
