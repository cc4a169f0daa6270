package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/state"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	st, err := state.NewStore(storage.NewMemoryRepository(), "sf_demo_v1", state.NewSkeleton("hash"), nil)
	require.NoError(t, err)
	return st
}

func load(t *testing.T, st *state.Store) *entity.Document {
	t.Helper()
	doc, err := st.Load(context.Background())
	require.NoError(t, err)
	return doc
}
