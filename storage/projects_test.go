package storage

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateProject(t *testing.T) {
	store := openTestStore(t)

	project, err := store.CreateProject("user-1", "Transit study", "Ridership analysis")
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	var stageIDs []string
	if err := json.Unmarshal([]byte(project.AllStageIDs), &stageIDs); err != nil {
		t.Fatalf("AllStageIDs is not a JSON array: %v", err)
	}
	if len(stageIDs) != 5 {
		t.Fatalf("project has %d stage ids, want 5", len(stageIDs))
	}

	stages, err := store.ListStages(project.ID)
	if err != nil {
		t.Fatalf("ListStages() error = %v", err)
	}
	if len(stages) != 5 {
		t.Fatalf("project has %d stages, want 5", len(stages))
	}
	for i, stage := range stages {
		if stage.Pos != i {
			t.Errorf("stage %d has pos %d", i, stage.Pos)
		}
		if stage.Status != 0 {
			t.Errorf("new stage %d has status %d, want 0", i, stage.Status)
		}
		if stage.ID != stageIDs[i] {
			t.Errorf("stage order differs from AllStageIDs at %d", i)
		}
	}
}

func TestProjectLifecycle(t *testing.T) {
	store := openTestStore(t)

	project, err := store.CreateProject("user-1", "Study", "")
	if err != nil {
		t.Fatal(err)
	}
	chat, err := store.CreateChat("user-1")
	if err != nil {
		t.Fatal(err)
	}

	stages, err := store.ListStages(project.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.AttachChatToStage(stages[0].ID, chat.ID); err != nil {
		t.Fatalf("AttachChatToStage() error = %v", err)
	}
	if err := store.UpdateStageStatus(stages[0].ID, 2); err != nil {
		t.Fatalf("UpdateStageStatus() error = %v", err)
	}

	stages, err = store.ListStages(project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stages[0].ChatID != chat.ID {
		t.Errorf("stage chat = %q, want %q", stages[0].ChatID, chat.ID)
	}
	if stages[0].Status != 2 {
		t.Errorf("stage status = %d, want 2", stages[0].Status)
	}

	if err := store.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	stages, err = store.ListStages(project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 0 {
		t.Errorf("deleted project still has %d stages", len(stages))
	}

	// The chat outlives the project.
	if _, err := store.GetChat(chat.ID); err != nil {
		t.Errorf("chat should survive project deletion: %v", err)
	}
}

func TestProjectNotFound(t *testing.T) {
	store := openTestStore(t)

	if err := store.DeleteProject("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteProject(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.AttachChatToStage("missing", "chat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AttachChatToStage(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.UpdateStageStatus("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStageStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListProjectsPerUser(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.CreateProject("user-1", "A", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateProject("user-2", "B", ""); err != nil {
		t.Fatal(err)
	}

	projects, err := store.ListProjects("user-1")
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "A" {
		t.Errorf("ListProjects(user-1) = %+v, want only project A", projects)
	}
}
