package kvstore

import (
	"context"

	"github.com/trezcool/missingwork/core/assignment"
)

type assignmentRepository struct {
	db  *DB
	tbl *table[assignment.Assignment]
}

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db, tbl: db.assignments}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	repo.tbl.rows = append(repo.tbl.rows, a)
	return a, repo.tbl.save(ctx, repo.db)
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()
	return repo.tbl.query(), nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (assignment.Assignment, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()

	if i := repo.tbl.index(func(a assignment.Assignment) bool { return a.ID == id }); i >= 0 {
		return repo.tbl.rows[i], nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id string) error {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	repo.tbl.remove(func(a assignment.Assignment) bool { return a.ID == id })
	return repo.tbl.save(ctx, repo.db)
}
