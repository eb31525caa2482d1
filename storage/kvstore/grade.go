package kvstore

import (
	"context"

	"github.com/trezcool/missingwork/core/grade"
)

type gradeRepository struct {
	db  *DB
	tbl *table[grade.Grade]
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db, tbl: db.grades}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	if repo.tbl.index(func(g grade.Grade) bool { return g.Same(grd.Number, grd.Class) }) >= 0 {
		return grade.Grade{}, grade.ErrDuplicateGrade
	}
	repo.tbl.rows = append(repo.tbl.rows, grd)
	return grd, repo.tbl.save(ctx, repo.db)
}

func (repo *gradeRepository) QueryAllGrades(_ context.Context) ([]grade.Grade, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()
	return repo.tbl.query(), nil
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id string) (grade.Grade, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()

	if i := repo.tbl.index(func(g grade.Grade) bool { return g.ID == id }); i >= 0 {
		return repo.tbl.rows[i], nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id string) error {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	repo.tbl.remove(func(g grade.Grade) bool { return g.ID == id })
	return repo.tbl.save(ctx, repo.db)
}
