package storage

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// stagesPerProject is the fixed pipeline length: every project is created
// with this many stages, pos 0..4.
const stagesPerProject = 5

type Project struct {
	ID          string `json:"projectId"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AllStageIDs string `json:"allStageIds"`
}

type Stage struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Status    int    `json:"status"`
	Pos       int    `json:"pos"`
	ChatID    string `json:"chatId,omitempty"`
}

// CreateProject creates a project together with its fixed stage pipeline.
func (s *Store) CreateProject(userID, title, description string) (*Project, error) {
	project := &Project{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stageIDs := make([]string, 0, stagesPerProject)
	for pos := 0; pos < stagesPerProject; pos++ {
		id := uuid.New().String()
		if _, err := tx.Exec(
			"INSERT INTO stages (id, project_id, status, pos) VALUES (?, ?, 0, ?)",
			id, project.ID, pos,
		); err != nil {
			return nil, fmt.Errorf("failed to create stage: %w", err)
		}
		stageIDs = append(stageIDs, id)
	}

	encoded, err := json.Marshal(stageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stage ids: %w", err)
	}
	project.AllStageIDs = string(encoded)

	if _, err := tx.Exec(
		"INSERT INTO projects (id, user_id, title, description, all_stage_ids) VALUES (?, ?, ?, ?, ?)",
		project.ID, project.UserID, project.Title, project.Description, project.AllStageIDs,
	); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit project: %w", err)
	}
	return project, nil
}

// ListProjects returns up to 30 of a user's projects.
func (s *Store) ListProjects(userID string) ([]Project, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, description, all_stage_ids FROM projects WHERE user_id = ? LIMIT 30", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.AllStageIDs); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project and its stages. Chats referenced by the
// stages are kept.
func (s *Store) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM stages WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete stages: %w", err)
	}
	res, err := tx.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ListStages returns a project's stages in pipeline order.
func (s *Store) ListStages(projectID string) ([]Stage, error) {
	rows, err := s.db.Query(
		"SELECT id, project_id, status, pos, chat_id FROM stages WHERE project_id = ? ORDER BY pos", projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []Stage
	for rows.Next() {
		var st Stage
		if err := rows.Scan(&st.ID, &st.ProjectID, &st.Status, &st.Pos, &st.ChatID); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	return stages, rows.Err()
}

// AttachChatToStage links a chat session to a stage. A stage references at
// most one chat; attaching replaces any previous reference.
func (s *Store) AttachChatToStage(stageID, chatID string) error {
	res, err := s.db.Exec("UPDATE stages SET chat_id = ? WHERE id = ?", chatID, stageID)
	if err != nil {
		return fmt.Errorf("failed to attach chat: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStageStatus sets a stage's status value.
func (s *Store) UpdateStageStatus(stageID string, status int) error {
	res, err := s.db.Exec("UPDATE stages SET status = ? WHERE id = ?", status, stageID)
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
