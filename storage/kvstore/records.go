package kvstore

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
)

// Load fills dst, a pointer, with the collection stored under name.
// An absent collection leaves dst empty. So does a corrupt one, which is logged.
func Load(ctx context.Context, store core.Store, log core.Logger, name string, dst interface{}) error {
	data, err := store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return nil
		}
		return errors.Wrapf(err, "loading %s", name)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		log.Warn("kvstore: corrupt collection "+name+", loading it empty", err)
		reset(dst)
	}
	return nil
}

// Save replaces the collection stored under name with v.
// Failures are logged and returned as a *core.StorageError.
func Save(ctx context.Context, store core.Store, log core.Logger, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err == nil {
		err = store.Set(ctx, name, data)
	}
	if err != nil {
		err = core.NewStorageError(name, err)
		log.Error("kvstore: "+err.Error(), err)
		return err
	}
	return nil
}

func reset(dst interface{}) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
