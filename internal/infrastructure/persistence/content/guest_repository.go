package content

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/interfaces"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/pkg/config"
)

type GuestRepository struct {
	db     *sql.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewGuestRepository(db *sql.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *GuestRepository {
	return &GuestRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *GuestRepository) FindByID(id string) (*content.GuestNode, error) {
	if node, found := r.cache.GetGuest(id); found {
		return node, nil
	}

	node, err := r.loadFromDB(`WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	r.cache.SetGuest(node)
	return node, nil
}

// FindByInvitationAndEmail supports idempotent RSVP: a repeat submission
// from the same address updates the existing guest row.
func (r *GuestRepository) FindByInvitationAndEmail(invitationID, email string) (*content.GuestNode, error) {
	node, err := r.loadFromDB(`WHERE invitation_id = ? AND email = ?`, invitationID, email)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	r.cache.SetGuest(node)
	return node, nil
}

// FindByInvitation retrieves the guest list for an invitation, cache-first.
func (r *GuestRepository) FindByInvitation(invitationID string) ([]*content.GuestNode, error) {
	if ids, found := r.cache.GetGuestIDsByInvitation(invitationID); found {
		return r.findByIDs(ids)
	}

	ids, err := r.loadIDsByInvitationFromDB(invitationID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		r.cache.SetGuestIDsByInvitation(invitationID, []string{})
		return []*content.GuestNode{}, nil
	}

	r.cache.SetGuestIDsByInvitation(invitationID, ids)
	return r.findByIDs(ids)
}

func (r *GuestRepository) findByIDs(ids []string) ([]*content.GuestNode, error) {
	var result []*content.GuestNode
	var missingIDs []string

	for _, id := range ids {
		if node, found := r.cache.GetGuest(id); found {
			result = append(result, node)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missing, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}
		for _, node := range missing {
			r.cache.SetGuest(node)
			result = append(result, node)
		}
	}

	return result, nil
}

func (r *GuestRepository) Store(node *content.GuestNode) error {
	query := `INSERT INTO guests (id, invitation_id, name, email, status, plus_ones, message, responded_at, created)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing guest insert", "id", node.ID, "invitationId", node.InvitationID)

	_, err := r.db.Exec(query, node.ID, node.InvitationID, node.Name, node.Email,
		node.Status, node.PlusOnes, node.Message, node.RespondedAt, node.Created)
	if err != nil {
		r.logger.Database().Error("Guest insert failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to insert guest: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Guest insert completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateGuests(node.InvitationID)
	r.cache.SetGuest(node)
	return nil
}

func (r *GuestRepository) Update(node *content.GuestNode) error {
	query := `UPDATE guests SET name = ?, email = ?, status = ?, plus_ones = ?, message = ?, responded_at = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing guest update", "id", node.ID)

	_, err := r.db.Exec(query, node.Name, node.Email, node.Status,
		node.PlusOnes, node.Message, node.RespondedAt, node.ID)
	if err != nil {
		r.logger.Database().Error("Guest update failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to update guest: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Guest update completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetGuest(node)
	return nil
}

func (r *GuestRepository) Delete(id string) error {
	node, err := r.FindByID(id)
	if err != nil {
		return err
	}

	query := `DELETE FROM guests WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing guest delete", "id", id)

	_, err = r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Guest delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete guest: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Guest delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	if node != nil {
		r.cache.InvalidateGuests(node.InvitationID)
	}
	return nil
}

func (r *GuestRepository) loadIDsByInvitationFromDB(invitationID string) ([]string, error) {
	query := `SELECT id FROM guests WHERE invitation_id = ? ORDER BY created`

	start := time.Now()
	r.logger.Database().Debug("Loading guest IDs from database", "invitationId", invitationID)

	rows, err := r.db.Query(query, invitationID)
	if err != nil {
		r.logger.Database().Error("Failed to query guest IDs", "error", err.Error(), "invitationId", invitationID)
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guest ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded guest IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

const guestColumns = `id, invitation_id, name, email, status, plus_ones, message, responded_at, created`

func (r *GuestRepository) loadFromDB(where string, args ...any) (*content.GuestNode, error) {
	query := `SELECT ` + guestColumns + ` FROM guests ` + where

	row := r.db.QueryRow(query, args...)
	node, err := scanGuest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan guest", "error", err.Error())
		return nil, err
	}
	return node, nil
}

func (r *GuestRepository) loadMultipleFromDB(ids []string) ([]*content.GuestNode, error) {
	if len(ids) == 0 {
		return []*content.GuestNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + guestColumns + ` FROM guests WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple guests from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple guests", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var nodes []*content.GuestNode
	for rows.Next() {
		node, err := scanGuest(rows.Scan)
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple guests loaded from database", "requested", len(ids), "loaded", len(nodes), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nodes, rows.Err()
}

func scanGuest(scan func(dest ...any) error) (*content.GuestNode, error) {
	var node content.GuestNode
	var respondedAt sql.NullTime

	err := scan(&node.ID, &node.InvitationID, &node.Name, &node.Email,
		&node.Status, &node.PlusOnes, &node.Message, &respondedAt, &node.Created)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan guest: %w", err)
	}

	if respondedAt.Valid {
		t := respondedAt.Time
		node.RespondedAt = &t
	}
	node.NodeType = "Guest"
	return &node, nil
}
