package courses

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// TaskEntry is a task with optimistic-mutation state.
type TaskEntry struct {
	api.Task
	Pending bool
}

// ExamEntry is an exam with optimistic-mutation state.
type ExamEntry struct {
	api.Exam
	Pending bool
}

// ModuleEntry is a module with optimistic-mutation state.
type ModuleEntry struct {
	api.Module
	Pending bool
}

// Detail is the transient aggregate behind a single course's detail view:
// its tasks, exams, and modules. It is created when the view opens and
// discarded when it closes; nothing here is shared with the course
// collection cache.
//
// Creates append a pending entry immediately and reconcile it against the
// server-confirmed record; deletes remove immediately and restore on
// failure. Loads carry a sequence number so a stale response from an
// abandoned load can never overwrite newer state.
type Detail struct {
	client   *api.Client
	courseID string

	mu      sync.RWMutex
	loadSeq uint64
	tasks   []TaskEntry
	exams   []ExamEntry
	modules []ModuleEntry
}

// NewDetail creates the detail aggregate for one course.
func NewDetail(client *api.Client, courseID string) *Detail {
	return &Detail{
		client:   client,
		courseID: courseID,
	}
}

// CourseID returns the id of the course this aggregate belongs to.
func (d *Detail) CourseID() string {
	return d.courseID
}

// Load fetches tasks, exams, and modules. If another Load starts before this
// one finishes, the earlier response is discarded.
func (d *Detail) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loadSeq++
	seq := d.loadSeq
	d.mu.Unlock()

	tasks, err := d.client.ListTasks(ctx, d.courseID)
	if err != nil {
		return err
	}
	exams, err := d.client.ListExams(ctx, d.courseID)
	if err != nil {
		return err
	}
	modules, err := d.client.ListModules(ctx, d.courseID)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.loadSeq {
		return nil
	}

	d.tasks = make([]TaskEntry, len(tasks))
	for i, task := range tasks {
		d.tasks[i] = TaskEntry{Task: task}
	}
	d.exams = make([]ExamEntry, len(exams))
	for i, exam := range exams {
		d.exams[i] = ExamEntry{Exam: exam}
	}
	d.modules = make([]ModuleEntry, len(modules))
	for i, module := range modules {
		d.modules[i] = ModuleEntry{Module: module}
	}

	return nil
}

// Tasks returns a copy of the current task list.
func (d *Detail) Tasks() []TaskEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]TaskEntry, len(d.tasks))
	copy(out, d.tasks)
	return out
}

// Exams returns a copy of the current exam list.
func (d *Detail) Exams() []ExamEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]ExamEntry, len(d.exams))
	copy(out, d.exams)
	return out
}

// Modules returns a copy of the current module list.
func (d *Detail) Modules() []ModuleEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]ModuleEntry, len(d.modules))
	copy(out, d.modules)
	return out
}

// CreateTask posts a new task with an optimistic pending entry.
func (d *Detail) CreateTask(ctx context.Context, draft api.TaskDraft) (*api.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.NewFieldRequiredError("title")
	}

	pendingID := "pending-" + uuid.NewString()

	d.mu.Lock()
	d.tasks = append(d.tasks, TaskEntry{
		Task: api.Task{
			ID:          pendingID,
			Title:       draft.Title,
			Description: draft.Description,
			Deadline:    draft.Deadline,
		},
		Pending: true,
	})
	d.mu.Unlock()

	created, err := d.client.CreateTask(ctx, d.courseID, draft)

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := indexByID(d.tasks, pendingID, func(e TaskEntry) string { return e.ID })
	if err != nil {
		if idx >= 0 {
			d.tasks = append(d.tasks[:idx], d.tasks[idx+1:]...)
		}
		return nil, err
	}

	confirmed := TaskEntry{Task: *created}
	if idx >= 0 {
		d.tasks[idx] = confirmed
	} else {
		d.tasks = append(d.tasks, confirmed)
	}

	return created, nil
}

// DeleteTask removes a task optimistically, restoring it if the server call
// fails.
func (d *Detail) DeleteTask(ctx context.Context, taskID string) error {
	d.mu.Lock()
	idx := indexByID(d.tasks, taskID, func(e TaskEntry) string { return e.ID })
	if idx < 0 {
		d.mu.Unlock()
		return errors.New(errors.ErrCodeCourseNotFound, "task not found: "+taskID)
	}
	removed := d.tasks[idx]
	d.tasks = append(d.tasks[:idx], d.tasks[idx+1:]...)
	d.mu.Unlock()

	if err := d.client.DeleteTask(ctx, taskID); err != nil {
		d.mu.Lock()
		d.tasks = append(d.tasks, removed)
		d.mu.Unlock()
		return err
	}

	return nil
}

// CreateExam posts a new exam with an optimistic pending entry.
func (d *Detail) CreateExam(ctx context.Context, draft api.ExamDraft) (*api.Exam, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.NewFieldRequiredError("title")
	}

	pendingID := "pending-" + uuid.NewString()

	d.mu.Lock()
	d.exams = append(d.exams, ExamEntry{
		Exam: api.Exam{
			ID:          pendingID,
			Title:       draft.Title,
			Description: draft.Description,
			DueDate:     draft.DueDate,
			Questions:   draft.Questions,
		},
		Pending: true,
	})
	d.mu.Unlock()

	created, err := d.client.CreateExam(ctx, d.courseID, draft)

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := indexByID(d.exams, pendingID, func(e ExamEntry) string { return e.ID })
	if err != nil {
		if idx >= 0 {
			d.exams = append(d.exams[:idx], d.exams[idx+1:]...)
		}
		return nil, err
	}

	confirmed := ExamEntry{Exam: *created}
	if idx >= 0 {
		d.exams[idx] = confirmed
	} else {
		d.exams = append(d.exams, confirmed)
	}

	return created, nil
}

// DeleteExam removes an exam optimistically, restoring it on failure.
func (d *Detail) DeleteExam(ctx context.Context, examID string) error {
	d.mu.Lock()
	idx := indexByID(d.exams, examID, func(e ExamEntry) string { return e.ID })
	if idx < 0 {
		d.mu.Unlock()
		return errors.New(errors.ErrCodeCourseNotFound, "exam not found: "+examID)
	}
	removed := d.exams[idx]
	d.exams = append(d.exams[:idx], d.exams[idx+1:]...)
	d.mu.Unlock()

	if err := d.client.DeleteExam(ctx, examID); err != nil {
		d.mu.Lock()
		d.exams = append(d.exams, removed)
		d.mu.Unlock()
		return err
	}

	return nil
}

// CreateModule posts a new module with an optimistic pending entry.
func (d *Detail) CreateModule(ctx context.Context, draft api.ModuleDraft) (*api.Module, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.NewFieldRequiredError("title")
	}

	pendingID := "pending-" + uuid.NewString()

	d.mu.Lock()
	d.modules = append(d.modules, ModuleEntry{
		Module: api.Module{
			ID:          pendingID,
			Title:       draft.Title,
			Description: draft.Description,
		},
		Pending: true,
	})
	d.mu.Unlock()

	created, err := d.client.CreateModule(ctx, d.courseID, draft)

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := indexByID(d.modules, pendingID, func(e ModuleEntry) string { return e.ID })
	if err != nil {
		if idx >= 0 {
			d.modules = append(d.modules[:idx], d.modules[idx+1:]...)
		}
		return nil, err
	}

	confirmed := ModuleEntry{Module: *created}
	if idx >= 0 {
		d.modules[idx] = confirmed
	} else {
		d.modules = append(d.modules, confirmed)
	}

	return created, nil
}

// UpdateModule edits a module's title and description, applying the
// server-confirmed record on success.
func (d *Detail) UpdateModule(ctx context.Context, moduleID string, draft api.ModuleDraft) error {
	updated, err := d.client.UpdateModule(ctx, moduleID, draft)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if idx := indexByID(d.modules, moduleID, func(e ModuleEntry) string { return e.ID }); idx >= 0 {
		d.modules[idx] = ModuleEntry{Module: *updated}
	}

	return nil
}

// DeleteModule removes a module optimistically, restoring it on failure.
func (d *Detail) DeleteModule(ctx context.Context, moduleID string) error {
	d.mu.Lock()
	idx := indexByID(d.modules, moduleID, func(e ModuleEntry) string { return e.ID })
	if idx < 0 {
		d.mu.Unlock()
		return errors.New(errors.ErrCodeCourseNotFound, "module not found: "+moduleID)
	}
	removed := d.modules[idx]
	d.modules = append(d.modules[:idx], d.modules[idx+1:]...)
	d.mu.Unlock()

	if err := d.client.DeleteModule(ctx, moduleID); err != nil {
		d.mu.Lock()
		d.modules = append(d.modules, removed)
		d.mu.Unlock()
		return err
	}

	return nil
}

// AddResource attaches a resource to a module, applying the confirmed record.
func (d *Detail) AddResource(ctx context.Context, moduleID, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewFieldRequiredError("name")
	}

	resource, err := d.client.AddResource(ctx, moduleID, name)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if idx := indexByID(d.modules, moduleID, func(e ModuleEntry) string { return e.ID }); idx >= 0 {
		d.modules[idx].Resources = append(d.modules[idx].Resources, *resource)
	}

	return nil
}

// RemoveResource detaches a resource from a module.
func (d *Detail) RemoveResource(ctx context.Context, moduleID, resourceID string) error {
	if err := d.client.RemoveResource(ctx, moduleID, resourceID); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if idx := indexByID(d.modules, moduleID, func(e ModuleEntry) string { return e.ID }); idx >= 0 {
		resources := d.modules[idx].Resources
		for i, resource := range resources {
			if resource.ID == resourceID {
				d.modules[idx].Resources = append(resources[:i], resources[i+1:]...)
				break
			}
		}
	}

	return nil
}

// indexByID finds the index of the entry with the given id, or -1.
func indexByID[T any](entries []T, id string, idOf func(T) string) int {
	for i, entry := range entries {
		if idOf(entry) == id {
			return i
		}
	}
	return -1
}
