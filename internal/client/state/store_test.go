package state

import (
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
)

func TestLoginLogout(t *testing.T) {
	s := NewStore()

	profile := &api.Profile{UserID: "u1", Email: "ada@example.com"}
	s.Apply(LoggedIn{Profile: profile})

	st := s.State()
	if !st.Authenticated {
		t.Fatalf("expected authenticated state")
	}
	if st.Profile == nil || st.Profile.Email != "ada@example.com" {
		t.Errorf("unexpected profile: %+v", st.Profile)
	}

	s.Apply(TasksLoaded{Tasks: []api.Task{{ID: 1, Title: "x"}}})
	s.Apply(LoggedOut{})

	st = s.State()
	if st.Authenticated || st.Profile != nil || st.Tasks != nil || st.Analytics != nil {
		t.Errorf("expected empty state after logout, got %+v", st)
	}
}

func TestProfileUpdated(t *testing.T) {
	s := NewStore()
	s.Apply(LoggedIn{Profile: &api.Profile{UserID: "u1", FirstName: "Ada"}})

	s.Apply(ProfileUpdated{Profile: &api.Profile{UserID: "u1", FirstName: "Grace"}})

	st := s.State()
	if !st.Authenticated {
		t.Errorf("profile update must not drop authentication")
	}
	if st.Profile.FirstName != "Grace" {
		t.Errorf("expected first name %q, got %q", "Grace", st.Profile.FirstName)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := NewStore()

	s.Apply(TasksLoaded{Tasks: []api.Task{
		{ID: 2, Title: "newer", Status: "pending"},
		{ID: 1, Title: "older", Status: "pending"},
	}})

	s.Apply(TaskAdded{Task: api.Task{ID: 3, Title: "newest", Status: "pending"}})

	st := s.State()
	if len(st.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(st.Tasks))
	}
	if st.Tasks[0].ID != 3 {
		t.Errorf("expected newest task first, got id %d", st.Tasks[0].ID)
	}

	s.Apply(TaskUpdated{Task: api.Task{ID: 2, Title: "newer", Status: "completed"}})

	st = s.State()
	var updated api.Task
	for _, task := range st.Tasks {
		if task.ID == 2 {
			updated = task
		}
	}
	if updated.Status != "completed" {
		t.Errorf("expected task 2 completed, got %q", updated.Status)
	}

	s.Apply(TaskRemoved{ID: 1})

	st = s.State()
	if len(st.Tasks) != 2 {
		t.Fatalf("expected 2 tasks after removal, got %d", len(st.Tasks))
	}
	for _, task := range st.Tasks {
		if task.ID == 1 {
			t.Errorf("task 1 should have been removed")
		}
	}
}

func TestReduceDoesNotMutatePrevious(t *testing.T) {
	s := NewStore()

	s.Apply(TasksLoaded{Tasks: []api.Task{{ID: 1, Status: "pending"}}})
	before := s.State()

	s.Apply(TaskUpdated{Task: api.Task{ID: 1, Status: "completed"}})

	if before.Tasks[0].Status != "pending" {
		t.Errorf("previous snapshot was mutated: %+v", before.Tasks[0])
	}
}

func TestAnalyticsLoaded(t *testing.T) {
	s := NewStore()

	s.Apply(AnalyticsLoaded{Analytics: &api.Analytics{Total: 6, Pending: 3, InProgress: 1, Completed: 2}})

	st := s.State()
	if st.Analytics == nil || st.Analytics.Total != 6 {
		t.Errorf("unexpected analytics: %+v", st.Analytics)
	}
}

func TestSubscribersNotified(t *testing.T) {
	s := NewStore()

	var got []State
	s.Subscribe(func(st State) { got = append(got, st) })

	s.Apply(LoggedIn{Profile: &api.Profile{UserID: "u1"}})
	s.Apply(LoggedOut{})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].Authenticated || got[1].Authenticated {
		t.Errorf("unexpected notification order: %+v", got)
	}
}
