// Package content provides the design, invitation, and guest repositories.
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/InkVite/inkvite-go/internal/domain/entities/content"
	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/interfaces"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/pkg/config"
)

type DesignRepository struct {
	db     *sql.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewDesignRepository(db *sql.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *DesignRepository {
	return &DesignRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *DesignRepository) FindByID(id string) (*content.DesignNode, error) {
	if node, found := r.cache.GetDesign(id); found {
		return node, nil
	}

	node, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	r.cache.SetDesign(node)
	return node, nil
}

// FindAll retrieves every design, employing a cache-first strategy: the
// master ID list is cached separately from the nodes themselves.
func (r *DesignRepository) FindAll() ([]*content.DesignNode, error) {
	if ids, found := r.cache.GetAllDesignIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.DesignNode{}, nil
	}

	r.cache.SetAllDesignIDs(ids)
	return r.FindByIDs(ids)
}

func (r *DesignRepository) FindByIDs(ids []string) ([]*content.DesignNode, error) {
	var result []*content.DesignNode
	var missingIDs []string

	for _, id := range ids {
		if node, found := r.cache.GetDesign(id); found {
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
			r.cache.SetDesign(node)
			result = append(result, node)
		}
	}

	return result, nil
}

func (r *DesignRepository) Store(node *content.DesignNode) error {
	documentJSON, err := json.Marshal(node.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal design document: %w", err)
	}

	query := `INSERT INTO designs (id, title, document, background_image_url, thumbnail_url, created, changed)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing design insert", "id", node.ID)

	_, err = r.db.Exec(query, node.ID, node.Title, string(documentJSON),
		node.BackgroundImageURL, node.ThumbnailURL, node.Created, node.Changed)
	if err != nil {
		r.logger.Database().Error("Design insert failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to insert design: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Design insert completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	// Drop the master ID list so the next FindAll sees the new row.
	r.cache.InvalidateDesign(node.ID)
	r.cache.SetDesign(node)
	return nil
}

func (r *DesignRepository) Update(node *content.DesignNode) error {
	documentJSON, err := json.Marshal(node.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal design document: %w", err)
	}

	query := `UPDATE designs SET title = ?, document = ?, background_image_url = ?, thumbnail_url = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing design update", "id", node.ID)

	_, err = r.db.Exec(query, node.Title, string(documentJSON),
		node.BackgroundImageURL, node.ThumbnailURL, node.Changed, node.ID)
	if err != nil {
		r.logger.Database().Error("Design update failed", "error", err.Error(), "id", node.ID)
		return fmt.Errorf("failed to update design: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Design update completed", "id", node.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateDesign(node.ID)
	r.cache.SetDesign(node)
	return nil
}

func (r *DesignRepository) Delete(id string) error {
	query := `DELETE FROM designs WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing design delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Design delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete design: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Design delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateDesign(id)
	return nil
}

func (r *DesignRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM designs ORDER BY created DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all design IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query design IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query designs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan design ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded design IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *DesignRepository) loadFromDB(id string) (*content.DesignNode, error) {
	query := `SELECT id, title, document, background_image_url, thumbnail_url, created, changed
	          FROM designs WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading design from database", "id", id)

	row := r.db.QueryRow(query, id)

	node, err := scanDesign(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan design", "error", err.Error(), "id", id)
		return nil, err
	}

	duration := time.Since(start)
	r.logger.Database().Info("Design loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return node, nil
}

func (r *DesignRepository) loadMultipleFromDB(ids []string) ([]*content.DesignNode, error) {
	if len(ids) == 0 {
		return []*content.DesignNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, title, document, background_image_url, thumbnail_url, created, changed
	          FROM designs WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple designs from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple designs", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query designs: %w", err)
	}
	defer rows.Close()

	var nodes []*content.DesignNode
	for rows.Next() {
		node, err := scanDesign(rows.Scan)
		if err != nil {
			// Skip malformed records but continue processing others
			continue
		}
		nodes = append(nodes, node)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple designs loaded from database", "requested", len(ids), "loaded", len(nodes), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nodes, rows.Err()
}

func scanDesign(scan func(dest ...any) error) (*content.DesignNode, error) {
	var node content.DesignNode
	var documentStr string
	var changed sql.NullTime

	err := scan(&node.ID, &node.Title, &documentStr,
		&node.BackgroundImageURL, &node.ThumbnailURL, &node.Created, &changed)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan design: %w", err)
	}

	var doc design.TemplateDocument
	if err := json.Unmarshal([]byte(documentStr), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse design document: %w", err)
	}
	node.Document = &doc

	if changed.Valid {
		t := changed.Time
		node.Changed = &t
	}
	node.NodeType = "Design"
	return &node, nil
}
