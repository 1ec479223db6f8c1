package services

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/db"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the repositories. Tx-variant writes
// land in a staging area that only becomes visible when the surrounding
// memTxRunner commits, mirroring the registration transaction boundary.
type memStore struct {
	nextID int64

	users    map[int64]*models.User
	students map[int64]*models.Student
	parents  map[int64]*models.Parent
	links    [][2]int64
	apps     map[int64]*models.Application
	notes    map[int64]*models.ParentNote
	unis     map[int64]*models.University

	staged *stagedWrites

	// failLinkTx injects a failure into CreateLinkTx.
	failLinkTx error
}

type stagedWrites struct {
	users    []*models.User
	students []*models.Student
	parents  []*models.Parent
	links    [][2]int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*models.User),
		students: make(map[int64]*models.Student),
		parents:  make(map[int64]*models.Parent),
		apps:     make(map[int64]*models.Application),
		notes:    make(map[int64]*models.ParentNote),
		unis:     make(map[int64]*models.University),
	}
}

func (m *memStore) next() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) commitStaged() {
	for _, u := range m.staged.users {
		m.users[u.ID] = u
	}
	for _, s := range m.staged.students {
		m.students[s.ID] = s
	}
	for _, p := range m.staged.parents {
		m.parents[p.ID] = p
	}
	m.links = append(m.links, m.staged.links...)
	m.staged = nil
}

// memTxRunner implements db.TxRunner over the staging area.
type memTxRunner struct {
	store *memStore
}

var _ db.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	r.store.staged = &stagedWrites{}
	if err := fn(ctx, nil); err != nil {
		r.store.staged = nil
		return err
	}
	r.store.commitStaged()
	return nil
}

// IUserRepository

var _ repositories.IUserRepository = (*memStore)(nil)

func (m *memStore) CreateUserTx(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	created := *user
	created.ID = m.next()
	m.staged.users = append(m.staged.users, &created)
	return created.ID, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateStudentTx(_ context.Context, _ pgx.Tx, student *models.Student) (int64, error) {
	created := *student
	created.ID = m.next()
	m.staged.students = append(m.staged.students, &created)
	return created.ID, nil
}

func (m *memStore) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStore) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStore) findStudentIDByEmail(email string) (int64, error) {
	for _, u := range m.users {
		if u.Email == email && u.RoleType == models.RoleStudent {
			for _, s := range m.students {
				if s.UserID == u.ID {
					return s.ID, nil
				}
			}
		}
	}
	return 0, apperrors.ErrStudentNotFound
}

func (m *memStore) FindStudentIDByEmail(_ context.Context, email string) (int64, error) {
	return m.findStudentIDByEmail(email)
}

func (m *memStore) FindStudentIDByEmailTx(_ context.Context, _ pgx.Tx, email string) (int64, error) {
	return m.findStudentIDByEmail(email)
}

func (m *memStore) UpdateStudentProfile(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	updated := *student
	m.students[student.ID] = &updated
	return nil
}

func (m *memStore) CreateParentTx(_ context.Context, _ pgx.Tx, parent *models.Parent) (int64, error) {
	created := *parent
	created.ID = m.next()
	m.staged.parents = append(m.staged.parents, &created)
	return created.ID, nil
}

func (m *memStore) GetParentByUserID(_ context.Context, userID int64) (*models.Parent, error) {
	for _, p := range m.parents {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperrors.ErrParentNotFound
}

// IParentLinkRepository

var _ repositories.IParentLinkRepository = (*memStore)(nil)

func (m *memStore) CreateLink(_ context.Context, parentID, studentID int64) error {
	for _, link := range m.links {
		if link[0] == parentID && link[1] == studentID {
			return apperrors.ErrAlreadyLinked
		}
	}
	m.links = append(m.links, [2]int64{parentID, studentID})
	return nil
}

func (m *memStore) CreateLinkTx(_ context.Context, _ pgx.Tx, parentID, studentID int64) error {
	if m.failLinkTx != nil {
		return m.failLinkTx
	}
	m.staged.links = append(m.staged.links, [2]int64{parentID, studentID})
	return nil
}

func (m *memStore) IsLinked(_ context.Context, parentID, studentID int64) (bool, error) {
	for _, link := range m.links {
		if link[0] == parentID && link[1] == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListStudentsByParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	ids, _ := m.ListStudentIDsByParent(ctx, parentID)
	var students []*models.Student
	for _, id := range ids {
		if s, ok := m.students[id]; ok {
			students = append(students, s)
		}
	}
	return students, nil
}

func (m *memStore) ListStudentIDsByParent(_ context.Context, parentID int64) ([]int64, error) {
	var ids []int64
	for _, link := range m.links {
		if link[0] == parentID {
			ids = append(ids, link[1])
		}
	}
	return ids, nil
}

// IApplicationRepository

var _ repositories.IApplicationRepository = (*memStore)(nil)

func (m *memStore) Create(_ context.Context, app *models.Application) (int64, error) {
	for _, existing := range m.apps {
		if existing.StudentID == app.StudentID &&
			existing.UniversityID == app.UniversityID &&
			existing.ApplicationType == app.ApplicationType {
			return 0, apperrors.ErrDuplicateApplication
		}
	}
	created := *app
	created.ID = m.next()
	m.apps[created.ID] = &created
	return created.ID, nil
}

func (m *memStore) GetByIDForStudent(_ context.Context, id, studentID int64) (*models.Application, error) {
	app, ok := m.apps[id]
	if !ok || app.StudentID != studentID {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Application, error) {
	var apps []*models.Application
	for _, app := range m.apps {
		if app.StudentID == studentID {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	return apps, nil
}

func (m *memStore) ListForParent(ctx context.Context, parentID int64, studentID *int64) ([]*models.Application, error) {
	linked, _ := m.ListStudentIDsByParent(ctx, parentID)
	isLinked := func(id int64) bool {
		for _, l := range linked {
			if l == id {
				return true
			}
		}
		return false
	}

	var apps []*models.Application
	for _, app := range m.apps {
		if !isLinked(app.StudentID) {
			continue
		}
		if studentID != nil && app.StudentID != *studentID {
			continue
		}
		copied := *app
		copied.ParentNotes = nil
		for _, note := range m.notes {
			if note.ApplicationID == app.ID && note.ParentID == parentID {
				copied.ParentNotes = append(copied.ParentNotes, note)
			}
		}
		apps = append(apps, &copied)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	return apps, nil
}

func (m *memStore) Update(_ context.Context, app *models.Application) error {
	existing, ok := m.apps[app.ID]
	if !ok || existing.StudentID != app.StudentID {
		return apperrors.ErrApplicationNotFound
	}
	updated := *app
	m.apps[app.ID] = &updated
	return nil
}

func (m *memStore) Delete(_ context.Context, id, studentID int64) error {
	app, ok := m.apps[id]
	if !ok || app.StudentID != studentID {
		return apperrors.ErrApplicationNotFound
	}
	delete(m.apps, id)
	return nil
}

func (m *memStore) GetOwnerStudentID(_ context.Context, id int64) (int64, error) {
	app, ok := m.apps[id]
	if !ok {
		return 0, apperrors.ErrApplicationNotFound
	}
	return app.StudentID, nil
}

// IParentNoteRepository

type memNoteRepo struct {
	store *memStore
}

var _ repositories.IParentNoteRepository = (*memNoteRepo)(nil)

func (r *memNoteRepo) Create(_ context.Context, note *models.ParentNote) (int64, error) {
	if _, ok := r.store.apps[note.ApplicationID]; !ok {
		return 0, apperrors.ErrApplicationNotFound
	}
	created := *note
	created.ID = r.store.next()
	r.store.notes[created.ID] = &created
	return created.ID, nil
}

func (r *memNoteRepo) GetByID(_ context.Context, id int64) (*models.ParentNote, error) {
	note, ok := r.store.notes[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return note, nil
}

// IUniversityRepository

type memUniversityRepo struct {
	store *memStore
}

var _ repositories.IUniversityRepository = (*memUniversityRepo)(nil)

func (r *memUniversityRepo) GetByID(_ context.Context, id int64) (*models.University, error) {
	uni, ok := r.store.unis[id]
	if !ok {
		return nil, apperrors.ErrUniversityNotFound
	}
	return uni, nil
}

func (r *memUniversityRepo) List(_ context.Context, filter dto.UniversityFilterRequest, offset, limit int) ([]*models.University, int64, error) {
	var unis []*models.University
	for _, uni := range r.store.unis {
		if filter.Search != nil && !strings.Contains(strings.ToLower(uni.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		unis = append(unis, uni)
	}
	sort.Slice(unis, func(i, j int) bool { return unis[i].ID < unis[j].ID })

	total := int64(len(unis))
	if offset >= len(unis) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(unis) {
		end = len(unis)
	}
	return unis[offset:end], total, nil
}

func (r *memUniversityRepo) Upsert(_ context.Context, uni *models.University) error {
	for _, existing := range r.store.unis {
		if existing.Name == uni.Name {
			*existing = *uni
			return nil
		}
	}
	created := *uni
	created.ID = r.store.next()
	r.store.unis[created.ID] = &created
	return nil
}

// IRequirementRepository

type memRequirementRepo struct {
	store *memStore
	reqs  map[int64]*models.ApplicationRequirement
}

var _ repositories.IRequirementRepository = (*memRequirementRepo)(nil)

func newMemRequirementRepo(store *memStore) *memRequirementRepo {
	return &memRequirementRepo{
		store: store,
		reqs:  make(map[int64]*models.ApplicationRequirement),
	}
}

func (r *memRequirementRepo) Create(_ context.Context, req *models.ApplicationRequirement) (int64, error) {
	if _, ok := r.store.apps[req.ApplicationID]; !ok {
		return 0, apperrors.ErrApplicationNotFound
	}
	created := *req
	created.ID = r.store.next()
	r.reqs[created.ID] = &created
	return created.ID, nil
}

func (r *memRequirementRepo) GetByID(_ context.Context, id int64) (*models.ApplicationRequirement, error) {
	req, ok := r.reqs[id]
	if !ok {
		return nil, apperrors.ErrRequirementNotFound
	}
	return req, nil
}

func (r *memRequirementRepo) Update(_ context.Context, req *models.ApplicationRequirement) error {
	if _, ok := r.reqs[req.ID]; !ok {
		return apperrors.ErrRequirementNotFound
	}
	updated := *req
	r.reqs[req.ID] = &updated
	return nil
}

func (r *memRequirementRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.reqs[id]; !ok {
		return apperrors.ErrRequirementNotFound
	}
	delete(r.reqs, id)
	return nil
}

func (r *memRequirementRepo) GetOwnerStudentID(_ context.Context, id int64) (int64, error) {
	req, ok := r.reqs[id]
	if !ok {
		return 0, apperrors.ErrRequirementNotFound
	}
	app, ok := r.store.apps[req.ApplicationID]
	if !ok {
		return 0, apperrors.ErrRequirementNotFound
	}
	return app.StudentID, nil
}

// Seeding helpers

func (m *memStore) addStudentAccount(email, name string) (*models.User, *models.Student) {
	user := &models.User{ID: m.next(), Email: email, Password: "x", RoleType: models.RoleStudent}
	student := &models.Student{ID: m.next(), UserID: user.ID, Name: name}
	m.users[user.ID] = user
	m.students[student.ID] = student
	return user, student
}

func (m *memStore) addParentAccount(email, name string) (*models.User, *models.Parent) {
	user := &models.User{ID: m.next(), Email: email, Password: "x", RoleType: models.RoleParent}
	parent := &models.Parent{ID: m.next(), UserID: user.ID, Name: name}
	m.users[user.ID] = user
	m.parents[parent.ID] = parent
	return user, parent
}

func (m *memStore) addUniversity(name string) *models.University {
	uni := &models.University{ID: m.next(), Name: name, Country: "United States"}
	m.unis[uni.ID] = uni
	return uni
}

func (m *memStore) link(parentID, studentID int64) {
	m.links = append(m.links, [2]int64{parentID, studentID})
}

func studentPrincipal(user *models.User, student *models.Student) *auth.Principal {
	return &auth.Principal{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    models.RoleStudent,
		Student: student,
	}
}

func parentPrincipal(user *models.User, parent *models.Parent, linked ...int64) *auth.Principal {
	return &auth.Principal{
		UserID:           user.ID,
		Email:            user.Email,
		Role:             models.RoleParent,
		Parent:           parent,
		LinkedStudentIDs: linked,
	}
}

func newGuard(store *memStore, reqRepo *memRequirementRepo) *auth.AuthorizationService {
	resolvers := map[auth.EntityKind]auth.IOwnerResolver{
		auth.EntityApplication: store,
	}
	if reqRepo != nil {
		resolvers[auth.EntityRequirement] = reqRepo
	}
	return auth.NewAuthorizationService(store, store, resolvers)
}
