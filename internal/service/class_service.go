package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"tgclasses/internal/metrics"
	"tgclasses/internal/models"
	"tgclasses/internal/repository"
	"tgclasses/internal/schemas"
)

// Типы событий, рассылаемых подписчикам занятия
const (
	EventRSVPUpdated   = "rsvp_updated"
	EventQuestionAsked = "question_asked"
	EventClassUpdated  = "class_updated"
	EventClassDeleted  = "class_deleted"
)

// Identity содержит данные пользователя из внешней системы, по которым он находится или создаётся
type Identity struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
}

// Deps собирает зависимости сервиса. Cache и Notifier необязательны.
type Deps struct {
	Users     UserStore
	Classes   ClassStore
	RSVPs     RSVPStore
	Questions QuestionStore
	Cache     ListCache
	Notifier  Notifier
	Logger    *slog.Logger
}

// ClassService оркестрирует операции над занятиями: находит или создаёт пользователя,
// проверяет существование занятия и права создателя, затем вызывает репозиторий.
type ClassService struct {
	users     UserStore
	classes   ClassStore
	rsvps     RSVPStore
	questions QuestionStore
	cache     ListCache
	notifier  Notifier
	logger    *slog.Logger
}

func NewClassService(deps Deps) *ClassService {
	s := &ClassService{
		users:     deps.Users,
		classes:   deps.Classes,
		rsvps:     deps.RSVPs,
		questions: deps.Questions,
		cache:     deps.Cache,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
	if s.cache == nil {
		s.cache = noopCache{}
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// ResolveUser находит пользователя по telegram id или создаёт его.
// Если параллельный запрос успел создать того же пользователя, уникальный индекс
// отклонит вставку, и пользователь перечитывается один раз.
func (s *ClassService) ResolveUser(ctx context.Context, id Identity) (*models.User, error) {
	if id.TelegramID == 0 {
		return nil, fmt.Errorf("%w: telegram id is required", ErrValidation)
	}

	user, err := s.users.GetByTelegramID(ctx, id.TelegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if strings.TrimSpace(id.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required for a new user", ErrValidation)
	}

	created, err := s.users.Create(ctx, &models.User{
		TelegramID: id.TelegramID,
		FirstName:  id.FirstName,
		LastName:   id.LastName,
		Username:   id.Username,
	})
	if err == nil {
		metrics.IncUsersCreated()
		s.logger.Info("user created", slog.Int64("telegram_id", id.TelegramID), slog.Uint64("user_id", uint64(created.ID)))
		return created, nil
	}
	if !errors.Is(err, repository.ErrConstraintViolation) {
		return nil, err
	}

	metrics.IncIdentityRaceRetry()
	s.logger.Warn("concurrent user creation, re-fetching", slog.Int64("telegram_id", id.TelegramID))

	user, lookupErr := s.users.GetByTelegramID(ctx, id.TelegramID)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if user == nil {
		return nil, err
	}
	return user, nil
}

// CreateClass создаёт занятие, при необходимости заводя создателя
func (s *ClassService) CreateClass(ctx context.Context, req schemas.ClassCreateRequest) (*schemas.Class, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if req.ClassTime.IsZero() {
		return nil, fmt.Errorf("%w: class_time is required", ErrValidation)
	}

	user, err := s.ResolveUser(ctx, Identity{
		TelegramID: req.CreatorTelegramID,
		FirstName:  req.CreatorFirstName,
		LastName:   req.CreatorLastName,
		Username:   req.CreatorUsername,
	})
	if err != nil {
		return nil, err
	}

	class, err := s.classes.Create(ctx, repository.NewClass{
		Topic:       req.Topic,
		Description: req.Description,
		ClassTime:   req.ClassTime,
	}, user.ID)
	if err != nil {
		metrics.ObserveClassOperation("create", "error")
		return nil, err
	}

	metrics.ObserveClassOperation("create", "ok")
	s.cache.Invalidate(ctx)
	s.logger.Info("class created", slog.Uint64("class_id", uint64(class.ID)), slog.Uint64("creator_id", uint64(user.ID)))

	out := schemas.NewClass(*class)
	return &out, nil
}

// ListClasses возвращает страницу занятий, используя кэш, если он настроен.
// Нулевой limit означает значение по умолчанию.
func (s *ClassService) ListClasses(ctx context.Context, offset, limit int) ([]schemas.Class, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", ErrValidation)
	}
	if limit < 0 || limit > repository.MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrValidation, repository.MaxLimit)
	}
	offset, limit = repository.NormalizePage(offset, limit)

	cached, version, ok := s.cache.Get(ctx, offset, limit)
	if ok {
		return cached, nil
	}

	classes, err := s.classes.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	out := schemas.NewClasses(classes)
	s.cache.Set(ctx, version, offset, limit, out)
	return out, nil
}

// GetClass возвращает занятие со всеми связями
func (s *ClassService) GetClass(ctx context.Context, classID uint) (*schemas.Class, error) {
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	out := schemas.NewClass(*class)
	return &out, nil
}

// RSVP записывает ответ пользователя. Занятие проверяется до создания пользователя,
// так что запрос к несуществующему занятию ничего не меняет.
func (s *ClassService) RSVP(ctx context.Context, classID uint, req schemas.RsvpRequest) (*schemas.RSVP, error) {
	if !models.ValidRSVPStatus(req.Status) {
		return nil, fmt.Errorf("%w: status must be one of: yes no tentative", ErrValidation)
	}

	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	user, err := s.ResolveUser(ctx, Identity{
		TelegramID: req.TelegramID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
	})
	if err != nil {
		return nil, err
	}

	rsvp, err := s.rsvps.CreateOrUpdate(ctx, classID, user.ID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			// занятие удалили между проверкой и записью
			return nil, ErrNotFound
		}
		return nil, err
	}

	metrics.ObserveRSVP(rsvp.Status)
	s.cache.Invalidate(ctx)

	out := schemas.NewRSVP(*rsvp)
	s.notifier.Notify(classID, EventRSVPUpdated, out)
	return &out, nil
}

// AskQuestion сохраняет вопрос пользователя к занятию
func (s *ClassService) AskQuestion(ctx context.Context, classID uint, req schemas.QuestionRequest) (*schemas.Question, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	user, err := s.ResolveUser(ctx, Identity{
		TelegramID: req.TelegramID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
	})
	if err != nil {
		return nil, err
	}

	question, err := s.questions.Create(ctx, classID, user.ID, req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)

	out := schemas.NewQuestion(*question)
	s.notifier.Notify(classID, EventQuestionAsked, out)
	return &out, nil
}

// UpdateClass применяет частичное обновление от имени создателя занятия
func (s *ClassService) UpdateClass(ctx context.Context, classID uint, req schemas.ClassUpdateRequest) (*schemas.Class, error) {
	if _, err := s.authorizeOwner(ctx, "update", classID, req.UpdaterTelegramID); err != nil {
		return nil, err
	}

	// update_data разбирается только после проверки прав: чужой запрос получает
	// ErrForbidden даже с некорректными полями
	update, err := req.Changes()
	if err != nil {
		return nil, fmt.Errorf("%w: update_data: %v", ErrValidation, err)
	}

	changes, err := changesFrom(update)
	if err != nil {
		return nil, err
	}

	class, err := s.classes.Update(ctx, classID, changes)
	if err != nil {
		metrics.ObserveClassOperation("update", "error")
		return nil, err
	}
	if class == nil {
		metrics.ObserveClassOperation("update", "not_found")
		return nil, ErrNotFound
	}

	metrics.ObserveClassOperation("update", "ok")
	s.cache.Invalidate(ctx)

	out := schemas.NewClass(*class)
	s.notifier.Notify(classID, EventClassUpdated, out)
	return &out, nil
}

// DeleteClass удаляет занятие от имени создателя и возвращает его последний снимок
func (s *ClassService) DeleteClass(ctx context.Context, classID uint, deleterTelegramID int64) (*schemas.Class, error) {
	if _, err := s.authorizeOwner(ctx, "delete", classID, deleterTelegramID); err != nil {
		return nil, err
	}

	class, err := s.classes.Delete(ctx, classID)
	if err != nil {
		metrics.ObserveClassOperation("delete", "error")
		return nil, err
	}
	if class == nil {
		metrics.ObserveClassOperation("delete", "not_found")
		return nil, ErrNotFound
	}

	metrics.ObserveClassOperation("delete", "ok")
	s.cache.Invalidate(ctx)
	s.logger.Info("class deleted", slog.Uint64("class_id", uint64(classID)))

	out := schemas.NewClass(*class)
	s.notifier.Notify(classID, EventClassDeleted, out)
	return &out, nil
}

func (s *ClassService) requireClass(ctx context.Context, classID uint) error {
	class, err := s.classes.Find(ctx, classID)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}
	return nil
}

// authorizeOwner проверяет, что занятие существует и принадлежит пользователю с telegramID.
// Неизвестный пользователь ничем не владеет, поэтому получает ErrForbidden, а не создаётся.
func (s *ClassService) authorizeOwner(ctx context.Context, op string, classID uint, telegramID int64) (*models.Class, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("%w: telegram id is required", ErrValidation)
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	class, err := s.classes.Find(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		metrics.ObserveClassOperation(op, "not_found")
		return nil, ErrNotFound
	}

	if user == nil || class.CreatorID != user.ID {
		metrics.ObserveClassOperation(op, "forbidden")
		s.logger.Warn("class ownership check failed",
			slog.String("operation", op),
			slog.Uint64("class_id", uint64(classID)),
			slog.Int64("telegram_id", telegramID),
		)
		return nil, ErrForbidden
	}
	return class, nil
}

func changesFrom(update schemas.ClassUpdate) (repository.ClassChanges, error) {
	switch {
	case update.Topic.Null:
		return repository.ClassChanges{}, fmt.Errorf("%w: topic cannot be null", ErrValidation)
	case update.Description.Null:
		return repository.ClassChanges{}, fmt.Errorf("%w: description cannot be null", ErrValidation)
	case update.ClassTime.Null:
		return repository.ClassChanges{}, fmt.Errorf("%w: class_time cannot be null", ErrValidation)
	case update.Topic.Set && strings.TrimSpace(update.Topic.Value) == "":
		return repository.ClassChanges{}, fmt.Errorf("%w: topic cannot be empty", ErrValidation)
	case update.ClassTime.Set && update.ClassTime.Value.IsZero():
		return repository.ClassChanges{}, fmt.Errorf("%w: class_time cannot be zero", ErrValidation)
	}

	return repository.ClassChanges{
		Topic:       update.Topic.Ptr(),
		Description: update.Description.Ptr(),
		ClassTime:   update.ClassTime.Ptr(),
	}, nil
}
