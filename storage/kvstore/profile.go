package kvstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/profile"
)

type profileRepository struct {
	db  *DB
	tbl *profileTable
}

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db, tbl: db.profile}
}

// loadProfile reads the teacherInfo object, falling back to the three legacy keys.
func (db *DB) loadProfile(ctx context.Context) error {
	var p profile.Profile
	if err := Load(ctx, db.store, db.log, core.ProfileKey, &p); err != nil {
		return err
	}
	if p != (profile.Profile{}) {
		db.profile.p = &p
		return nil
	}

	legacy := make(map[string]string, 3)
	for _, key := range []string{core.LegacyTeacherNameKey, core.LegacySchoolIconKey, core.LegacyAppNameKey} {
		val, err := db.legacyValue(ctx, key)
		if err != nil {
			return err
		}
		if val == "" {
			return nil // not configured
		}
		legacy[key] = val
	}
	db.profile.p = &profile.Profile{
		Name:    legacy[core.LegacyTeacherNameKey],
		Logo:    legacy[core.LegacySchoolIconKey],
		AppName: legacy[core.LegacyAppNameKey],
	}
	return nil
}

// legacyValue returns the string stored under key, raw or JSON encoded.
func (db *DB) legacyValue(ctx context.Context, key string) (string, error) {
	data, err := db.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return "", nil
		}
		return "", errors.Wrapf(err, "loading %s", key)
	}
	val := string(data)
	if strings.HasPrefix(val, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			val = s
		}
	}
	return strings.TrimSpace(val), nil
}

func (repo *profileRepository) GetProfile(_ context.Context) (profile.Profile, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()

	if repo.tbl.p == nil {
		return profile.Profile{}, profile.ErrNotConfigured
	}
	return *repo.tbl.p, nil
}

func (repo *profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()

	if repo.tbl.p != nil {
		return profile.Profile{}, profile.ErrAlreadyConfigured
	}
	repo.tbl.p = &p
	return p, Save(ctx, repo.db.store, repo.db.log, core.ProfileKey, p)
}
