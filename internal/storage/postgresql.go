// Package storage implements the PostgreSQL persistence layer for users,
// events and registrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Registers the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/DEVYESH-1211/campus-events/internal/models"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered")
)

// Storage wraps the database connection pool.
type Storage struct {
	DB *sql.DB
}

// New opens a connection pool to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// SaveUser inserts a new user row and returns its ID.
func (s *Storage) SaveUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.SaveUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, roll_no, email, phone_number, department, year, password, role)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.RollNo, user.Email, user.PhoneNumber,
		user.Department, user.Year, user.Password, user.Role).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail returns the user with the given email or ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, roll_no, email, phone_number, department, year, password, role
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.RollNo, &u.Email, &u.PhoneNumber,
		&u.Department, &u.Year, &u.Password, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SaveEvent inserts a new event row and returns its ID.
func (s *Storage) SaveEvent(ctx context.Context, event models.Event) (int, error) {
	const op = "storage.SaveEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (event_name, event_date, venue, reg_fee, reg_close_date, max_participants)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		event.Name, event.Date, event.Venue, event.RegFee,
		event.RegCloseDate, event.MaxParticipants).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListEvents returns all events ordered by event date ascending.
func (s *Storage) ListEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, event_name, event_date, venue, reg_fee, reg_close_date, max_participants
			  FROM events
			  ORDER BY event_date ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		var eventDate, regCloseDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.Name, &eventDate, &item.Venue,
			&item.RegFee, &regCloseDate, &item.MaxParticipants); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if eventDate.Valid {
			item.Date = &eventDate.Time
		}
		if regCloseDate.Valid {
			item.RegCloseDate = &regCloseDate.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetEventByID returns the event with the given ID or ErrEventNotFound.
func (s *Storage) GetEventByID(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.GetEventByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, event_name, event_date, venue, reg_fee, reg_close_date, max_participants
			  FROM events
			  WHERE id = $1`
	e := &models.Event{}
	var eventDate, regCloseDate sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&e.ID, &e.Name, &eventDate, &e.Venue,
		&e.RegFee, &regCloseDate, &e.MaxParticipants); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if eventDate.Valid {
		e.Date = &eventDate.Time
	}
	if regCloseDate.Valid {
		e.RegCloseDate = &regCloseDate.Time
	}
	return e, nil
}

// SaveRegistration registers userName for the event in one transaction:
// the event row is locked, an existing (event_id, user_name) registration
// is reported as ErrAlreadyRegistered, and the insert snapshots the event's
// current name and date. The unique constraint on (event_id, user_name)
// backstops the check, so a concurrent duplicate also maps to
// ErrAlreadyRegistered instead of producing a second row.
func (s *Storage) SaveRegistration(ctx context.Context, eventID int, userName string) (int, error) {
	const op = "storage.SaveRegistration"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var eventName string
	var eventDate sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT event_name, event_date FROM events WHERE id = $1 FOR UPDATE`,
		eventID).Scan(&eventName, &eventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrEventNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND user_name = $2)`,
		eventID, userName).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, ErrAlreadyRegistered
	}

	var date any
	if eventDate.Valid {
		date = eventDate.Time
	}
	var newID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO registrations (event_id, event_name, event_date, user_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		eventID, eventName, date, userName).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRegistrationsByEvent returns all registrations for one event, oldest
// first. Used by the admin registrants view.
func (s *Storage) ListRegistrationsByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	const op = "storage.ListRegistrationsByEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, event_id, event_name, event_date, user_name
			  FROM registrations
			  WHERE event_id = $1
			  ORDER BY id ASC`
	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Registration
	for rows.Next() {
		var item models.Registration
		var eventDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.EventID, &item.EventName,
			&eventDate, &item.UserName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if eventDate.Valid {
			item.EventDate = &eventDate.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
