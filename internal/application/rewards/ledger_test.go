package rewards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/application/apptest"
	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/application/rewards"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

func TestCreditPoints(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	u := f.User(t, entity.RoleUsuario)
	l := rewards.NewLedger(f.Repos.Users, ports.NopMetrics{}, f.Log)

	require.NoError(t, l.CreditPoints(ctx, u.ID, rewards.PointsNewProduct))
	require.NoError(t, l.CreditPoints(ctx, u.ID, rewards.PointsApprovedPrice))
	require.NoError(t, l.CreditPoints(ctx, u.ID, 0))
	assert.Equal(t, int64(30), f.Points(t, u.ID))

	assert.ErrorIs(t, l.CreditPoints(ctx, u.ID, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, l.CreditPoints(ctx, "nadie", 10), domain.ErrNotFound)
	assert.ErrorIs(t, l.CreditPoints(ctx, "", 10), domain.ErrInvalidInput)
	assert.Equal(t, int64(30), f.Points(t, u.ID))
}

type pointsCounter struct {
	ports.NopMetrics
	total int64
	calls int
}

func (p *pointsCounter) PointsCredited(points int64) {
	p.total += points
	p.calls++
}

func TestCredited_RegistraSoloPremiosPositivos(t *testing.T) {
	f := apptest.New(t)
	m := &pointsCounter{}
	l := rewards.NewLedger(f.Repos.Users, m, f.Log)

	l.Credited("u1", rewards.PointsApprovedPrice)
	l.Credited("u1", 0)
	require.NoError(t, l.CreditPoints(context.Background(), f.User(t, entity.RoleUsuario).ID, rewards.PointsNewProduct))

	assert.Equal(t, 2, m.calls)
	assert.Equal(t, int64(30), m.total)
}
