package storage

import (
	"context"
	"errors"
	"fmt"

	"helpdesk/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Store owns all access to the user and ticket tables. Identifier
// assignment happens inside the database, so ids stay monotonic and are
// never reused, even after deletes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts user and fills in its assigned id. Returns
// ErrUsernameTaken if the username is already present.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetUserRole overwrites the role of the given user. The role string is
// stored as supplied.
func (s *Store) SetUserRole(ctx context.Context, id uint, role models.UserRole) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("update role of user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateTicket inserts t and fills in its assigned id.
func (s *Store) CreateTicket(ctx context.Context, t *models.Ticket) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *Store) TicketByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find ticket %d: %w", id, err)
	}
	return &t, nil
}

// ListTickets returns all tickets in insertion order.
func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// ListTicketsByOwner returns the tickets owned by userID in insertion order.
func (s *Store) ListTicketsByOwner(ctx context.Context, userID uint) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets of user %d: %w", userID, err)
	}
	return tickets, nil
}

func (s *Store) SaveTicket(ctx context.Context, t *models.Ticket) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save ticket %d: %w", t.ID, err)
	}
	return nil
}

func (s *Store) DeleteTicket(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Ticket{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete ticket %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
