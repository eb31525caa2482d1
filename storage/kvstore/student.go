package kvstore

import (
	"context"

	"github.com/trezcool/missingwork/core/student"
)

type studentRepository struct {
	db  *DB
	tbl *table[student.Student]
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db, tbl: db.students}
}

func (repo *studentRepository) CreateStudents(ctx context.Context, students ...student.Student) ([]student.Student, error) {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	repo.tbl.rows = append(repo.tbl.rows, students...)
	return students, repo.tbl.save(ctx, repo.db)
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()
	return repo.tbl.query(), nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()

	if i := repo.tbl.index(func(s student.Student) bool { return s.ID == id }); i >= 0 {
		return repo.tbl.rows[i], nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	i := repo.tbl.index(func(orig student.Student) bool { return orig.ID == s.ID })
	if i < 0 {
		return student.Student{}, student.ErrNotFound
	}
	repo.tbl.rows[i] = s
	return s, repo.tbl.save(ctx, repo.db)
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	repo.tbl.remove(func(s student.Student) bool { return s.ID == id })
	return repo.tbl.save(ctx, repo.db)
}
