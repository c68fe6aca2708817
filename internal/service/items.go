package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aminekebichi/MyDay/internal/apperr"
	"github.com/aminekebichi/MyDay/internal/calendar"
	"github.com/aminekebichi/MyDay/internal/models"
	"github.com/aminekebichi/MyDay/internal/repository"
	"github.com/aminekebichi/MyDay/internal/validation"
	"github.com/aminekebichi/MyDay/shared/middleware"
)

type ItemService struct {
	items  repository.ItemRepository
	users  repository.UserRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewItemService(items repository.ItemRepository, users repository.UserRepository, logger *logrus.Logger) *ItemService {
	return &ItemService{
		items:  items,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ItemService) entry(ctx context.Context, op string) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"component":  "item_service",
		"op":         op,
		"request_id": middleware.GetRequestID(ctx),
	})
}

// Authenticate resolves the caller from a session token.
func (s *ItemService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.Unauthorized()
	}
	user, err := s.users.GetBySessionToken(ctx, token)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.Unauthorized()
	}
	return user, nil
}

// Day returns the user's items scheduled on the given UTC calendar date,
// sorted by priority descending then time of day.
func (s *ItemService) Day(ctx context.Context, user *models.User, date string) ([]*models.Item, error) {
	if date == "" {
		return nil, apperr.BadRequest("Missing date parameter")
	}
	anchor, err := calendar.ParseAnchor(date)
	if err != nil {
		return nil, apperr.BadRequest("Invalid date format")
	}
	return s.queryWindow(ctx, user, "day", calendar.DayWindow(anchor), repository.OrderDay, calendar.SingleDay(anchor))
}

// Week returns the user's items on the seven UTC calendar dates starting at
// start, sorted by date, priority descending, then time of day. Recurring
// items are returned as stored; no occurrences are generated.
func (s *ItemService) Week(ctx context.Context, user *models.User, start string) ([]*models.Item, error) {
	if start == "" {
		return nil, apperr.BadRequest("Missing start parameter")
	}
	anchor, err := calendar.ParseAnchor(start)
	if err != nil {
		return nil, apperr.BadRequest("Invalid start date format")
	}
	return s.queryWindow(ctx, user, "week", calendar.WeekWindow(anchor), repository.OrderWeek, calendar.WeekDays(anchor))
}

func (s *ItemService) queryWindow(ctx context.Context, user *models.User, query string, w calendar.Window, order repository.Order, days calendar.DaySet) ([]*models.Item, error) {
	candidates, err := s.items.QueryRange(ctx, user.ID, w.Start, w.End, order)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	items := calendar.FilterDays(candidates, days)

	windowCandidates.WithLabelValues(query).Add(float64(len(candidates)))
	windowDropped.WithLabelValues(query).Add(float64(len(candidates) - len(items)))
	s.entry(ctx, query).WithFields(logrus.Fields{
		"user_id":     user.ID,
		"order":       order.String(),
		"query_start": w.Start,
		"query_end":   w.End,
		"candidates":  len(candidates),
		"returned":    len(items),
	}).Debug("window query completed")
	return items, nil
}

// Create validates in and stores a new item owned by user.
func (s *ItemService) Create(ctx context.Context, user *models.User, in *CreateItemInput) (*models.Item, error) {
	if fe := validation.Struct(in); fe != nil {
		return nil, apperr.Validation(fe)
	}

	now := s.now().UTC()
	item := &models.Item{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Title:        in.Title,
		Type:         models.ItemType(in.Type),
		Priority:     models.Priority(in.Priority),
		Date:         mustParse(in.Date),
		Time:         optionalTime(in.Time),
		Recurrence:   models.RecurrenceNone,
		Notes:        in.Notes,
		AttendeeName: in.AttendeeName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Recurrence != nil {
		item.Recurrence = models.Recurrence(*in.Recurrence)
	}
	item.RecurrenceEndDate = optionalTime(in.RecurrenceEndDate)

	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}
	s.entry(ctx, "create").WithField("item_id", item.ID).Info("item created")
	return item, nil
}

// Update applies a partial update to an item owned by user. Existence is
// checked before ownership.
func (s *ItemService) Update(ctx context.Context, user *models.User, id string, in *UpdateItemInput) (*models.Item, error) {
	if id == "" {
		return nil, apperr.BadRequest("Item ID is required")
	}
	fe := validation.Struct(in)
	if v := in.CompletedAt.Value; v != nil && *v != "" {
		if _, err := calendar.ParseAnchor(*v); err != nil {
			if fe == nil {
				fe = validation.FieldErrors{}
			}
			fe.Add("completedAt", "CompletedAt must be a valid date")
		}
	}
	if fe != nil {
		return nil, apperr.Validation(fe)
	}

	item, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(item, in)
	item.UpdatedAt = s.now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Item")
		}
		return nil, apperr.Internal(err)
	}
	s.entry(ctx, "update").WithField("item_id", id).Info("item updated")
	return item, nil
}

// Delete removes an item owned by user.
func (s *ItemService) Delete(ctx context.Context, user *models.User, id string) error {
	if id == "" {
		return apperr.BadRequest("Item ID is required")
	}
	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, user.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Item")
		}
		return apperr.Internal(err)
	}
	s.entry(ctx, "delete").WithField("item_id", id).Info("item deleted")
	return nil
}

func (s *ItemService) owned(ctx context.Context, user *models.User, id string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if item == nil {
		return nil, apperr.NotFound("Item")
	}
	if !item.OwnedBy(user.ID) {
		s.entry(ctx, "ownership").WithFields(logrus.Fields{
			"item_id": id,
			"user_id": user.ID,
		}).Warn("item not owned by caller")
		return nil, apperr.Forbidden()
	}
	return item, nil
}

func applyUpdate(item *models.Item, in *UpdateItemInput) {
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Type != nil {
		item.Type = models.ItemType(*in.Type)
	}
	if in.Priority != nil {
		item.Priority = models.Priority(*in.Priority)
	}
	if in.Date != nil {
		item.Date = mustParse(*in.Date)
	}
	if t := optionalTime(in.Time); t != nil {
		item.Time = t
	}
	if in.Recurrence != nil {
		item.Recurrence = models.Recurrence(*in.Recurrence)
	}
	if t := optionalTime(in.RecurrenceEndDate); t != nil {
		item.RecurrenceEndDate = t
	}
	if in.Notes != nil {
		item.Notes = in.Notes
	}
	if in.AttendeeName != nil {
		item.AttendeeName = in.AttendeeName
	}
	switch {
	case in.CompletedAt.IsNull():
		item.CompletedAt = nil
	case in.CompletedAt.Set:
		if t := optionalTime(in.CompletedAt.Value); t != nil {
			item.CompletedAt = t
		}
	}
}

// mustParse is only called on values that already passed datestring.
func mustParse(s string) time.Time {
	t, _ := calendar.ParseAnchor(s)
	return t
}

// optionalTime treats nil and "" as absent.
func optionalTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := mustParse(*s)
	return &t
}
