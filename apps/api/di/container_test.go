package di

import (
	"testing"

	echoapi "github.com/trezcool/missingwork/apps/api/echo"
	"github.com/trezcool/missingwork/core"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")

	err := New().Invoke(func(conf *core.Config, store core.Store, server *echoapi.Server) {
		if conf.Storage != core.StorageMemory {
			t.Errorf("conf.Storage = %q, want %q", conf.Storage, core.StorageMemory)
		}
		if server == nil {
			t.Error("server not built")
		}
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		storage string
		wantErr bool
	}{
		{storage: core.StorageMemory},
		{storage: core.StorageFile},
		{storage: "redis", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.storage, func(t *testing.T) {
			conf := &core.Config{Storage: tt.storage, DataDir: t.TempDir()}
			if _, err := NewStore(conf); (err != nil) != tt.wantErr {
				t.Errorf("NewStore() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
