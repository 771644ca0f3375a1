package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/interfaces"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/pkg/config"
)

type InvitationRepository struct {
	db     *sql.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewInvitationRepository(db *sql.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *InvitationRepository {
	return &InvitationRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *InvitationRepository) FindByID(id string) (*content.InvitationNode, error) {
	if node, found := r.cache.GetInvitation(id); found {
		return node, nil
	}

	node, err := r.loadFromDB(`WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	r.cache.SetInvitation(node)
	return node, nil
}

// FindBySlug resolves the public invitation URL segment to an invitation.
func (r *InvitationRepository) FindBySlug(slug string) (*content.InvitationNode, error) {
	if node, found := r.cache.GetInvitationBySlug(slug); found {
		return node, nil
	}

	node, err := r.loadFromDB(`WHERE slug = ?`, slug)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	r.cache.SetInvitation(node)
	return node, nil
}

func (r *InvitationRepository) FindAll() ([]*content.InvitationNode, error) {
	if ids, found := r.cache.GetAllInvitationIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.InvitationNode{}, nil
	}

	r.cache.SetAllInvitationIDs(ids)
	return r.FindByIDs(ids)
}

func (r *InvitationRepository) FindByIDs(ids []string) ([]*content.InvitationNode, error) {
	var result []*content.InvitationNode
	var missingIDs []string

	for _, id := range ids {
		if node, found := r.cache.GetInvitation(id); found {
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
			r.cache.SetInvitation(node)
			result = append(result, node)
		}
	}

	return result, nil
}

func (r *InvitationRepository) Store(node *content.InvitationNode) error {
	eventDataJSON, err := json.Marshal(node.EventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	query := `INSERT INTO invitations (id, title, slug, design_id, event_date, event_time, location, custom_text, more_info, event_data, created, changed)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing invitation insert", "id", node.ID, "slug", node.Slug)

	_, err = r.db.Exec(query, node.ID, node.Title, node.Slug, node.DesignID,
		node.EventDate, node.EventTime, node.Location, node.CustomText, node.MoreInfo,
		string(eventDataJSON), node.Created, node.Changed)
	if err != nil {
		r.logger.Database().Error("Invitation insert failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to insert invitation: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Invitation insert completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	// Drop the master ID list so the next FindAll sees the new row.
	r.cache.InvalidateInvitation(node.ID)
	r.cache.SetInvitation(node)
	return nil
}

func (r *InvitationRepository) Update(node *content.InvitationNode) error {
	eventDataJSON, err := json.Marshal(node.EventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	query := `UPDATE invitations SET title = ?, slug = ?, design_id = ?, event_date = ?, event_time = ?, location = ?, custom_text = ?, more_info = ?, event_data = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing invitation update", "id", node.ID)

	_, err = r.db.Exec(query, node.Title, node.Slug, node.DesignID,
		node.EventDate, node.EventTime, node.Location, node.CustomText, node.MoreInfo,
		string(eventDataJSON), node.Changed, node.ID)
	if err != nil {
		r.logger.Database().Error("Invitation update failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Invitation update completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateInvitation(node.ID)
	r.cache.SetInvitation(node)
	return nil
}

func (r *InvitationRepository) Delete(id string) error {
	query := `DELETE FROM invitations WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing invitation delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Invitation delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Invitation delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateInvitation(id)
	r.cache.InvalidateGuests(id)
	return nil
}

func (r *InvitationRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM invitations ORDER BY created DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all invitation IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query invitation IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan invitation ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded invitation IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

const invitationColumns = `id, title, slug, design_id, event_date, event_time, location, custom_text, more_info, event_data, created, changed`

func (r *InvitationRepository) loadFromDB(where string, arg any) (*content.InvitationNode, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations ` + where

	start := time.Now()
	r.logger.Database().Debug("Loading invitation from database", "arg", arg)

	row := r.db.QueryRow(query, arg)

	node, err := scanInvitation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan invitation", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	r.logger.Database().Info("Invitation loaded from database", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return node, nil
}

func (r *InvitationRepository) loadMultipleFromDB(ids []string) ([]*content.InvitationNode, error) {
	if len(ids) == 0 {
		return []*content.InvitationNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple invitations from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple invitations", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var nodes []*content.InvitationNode
	for rows.Next() {
		node, err := scanInvitation(rows.Scan)
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple invitations loaded from database", "requested", len(ids), "loaded", len(nodes), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nodes, rows.Err()
}

func scanInvitation(scan func(dest ...any) error) (*content.InvitationNode, error) {
	var node content.InvitationNode
	var eventDate, changed sql.NullTime
	var eventDataStr sql.NullString

	err := scan(&node.ID, &node.Title, &node.Slug, &node.DesignID,
		&eventDate, &node.EventTime, &node.Location, &node.CustomText, &node.MoreInfo,
		&eventDataStr, &node.Created, &changed)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}

	if eventDate.Valid {
		t := eventDate.Time
		node.EventDate = &t
	}
	if changed.Valid {
		t := changed.Time
		node.Changed = &t
	}
	if eventDataStr.Valid && eventDataStr.String != "" {
		if err := json.Unmarshal([]byte(eventDataStr.String), &node.EventData); err != nil {
			return nil, fmt.Errorf("failed to parse event data: %w", err)
		}
	}
	node.NodeType = "Invitation"
	return &node, nil
}
