// Package state holds the client's session view: the cached profile, the
// task list, and the latest analytics. All mutation goes through Store.Apply
// with explicit actions; there is no package-level mutable state.
package state

import "github.com/dmitrijs2005/tasktracker/internal/client/api"

// State is an immutable snapshot of the client session.
type State struct {
	Authenticated bool
	Profile       *api.Profile
	Tasks         []api.Task
	Analytics     *api.Analytics
}

// Action is a state transition request handled by the reducer.
type Action interface {
	isAction()
}

type LoggedIn struct {
	Profile *api.Profile
}

type LoggedOut struct{}

type ProfileUpdated struct {
	Profile *api.Profile
}

type TasksLoaded struct {
	Tasks []api.Task
}

type TaskAdded struct {
	Task api.Task
}

type TaskUpdated struct {
	Task api.Task
}

type TaskRemoved struct {
	ID int64
}

type AnalyticsLoaded struct {
	Analytics *api.Analytics
}

func (LoggedIn) isAction()        {}
func (LoggedOut) isAction()       {}
func (ProfileUpdated) isAction()  {}
func (TasksLoaded) isAction()     {}
func (TaskAdded) isAction()       {}
func (TaskUpdated) isAction()     {}
func (TaskRemoved) isAction()     {}
func (AnalyticsLoaded) isAction() {}

// reduce computes the next state. It never mutates the previous one: task
// slices are copied before changing.
func reduce(s State, a Action) State {
	switch a := a.(type) {

	case LoggedIn:
		return State{Authenticated: true, Profile: a.Profile}

	case LoggedOut:
		return State{}

	case ProfileUpdated:
		s.Profile = a.Profile
		return s

	case TasksLoaded:
		s.Tasks = append([]api.Task(nil), a.Tasks...)
		return s

	case TaskAdded:
		// New tasks come back newest-first from the server, so prepend.
		tasks := make([]api.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, a.Task)
		tasks = append(tasks, s.Tasks...)
		s.Tasks = tasks
		return s

	case TaskUpdated:
		tasks := append([]api.Task(nil), s.Tasks...)
		for i := range tasks {
			if tasks[i].ID == a.Task.ID {
				tasks[i] = a.Task
			}
		}
		s.Tasks = tasks
		return s

	case TaskRemoved:
		tasks := make([]api.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != a.ID {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks
		return s

	case AnalyticsLoaded:
		s.Analytics = a.Analytics
		return s
	}

	return s
}
