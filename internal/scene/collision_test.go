package scene

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hits records the ids an entity was notified about.
func hits(e Entity) *[]string {
	var got []string
	e.OnCollide(func(other Entity) { got = append(got, other.ID()) })
	return &got
}

func TestSplatCollisionNotifiesBothSides(t *testing.T) {
	s, _ := newTestScene(t)
	a := addSplat(t, s, "a", CategoryEnemy, 0, 0)
	b := addSplat(t, s, "b", CategoryMissile, 0.1, 0.1)
	far := addSplat(t, s, "far", CategoryEnemy, 0.8, 0.8)

	aHits, bHits, farHits := hits(a), hits(b), hits(far)
	s.DetectCollisions()

	assert.Equal(t, []string{"b"}, *aHits)
	assert.Equal(t, []string{"a"}, *bHits)
	assert.Empty(t, *farHits)
}

func TestAmmoNeverCollides(t *testing.T) {
	s, _ := newTestScene(t)
	m, err := s.AddModel(context.Background(), "ship.obj", "ship")
	require.NoError(t, err)
	ammo := addSplat(t, s, "ammo", CategoryAmmo, -0.05, -0.05)
	enemy := addSplat(t, s, "enemy", CategoryEnemy, 0.5, 0.5)
	missile := addSplat(t, s, "missile", CategoryMissile, 0.45, 0.45)

	ammoHits, enemyHits, missileHits, modelHits := hits(ammo), hits(enemy), hits(missile), hits(m)
	s.DetectCollisions()

	assert.Empty(t, *ammoHits)
	assert.Empty(t, *modelHits, "ammo sits on the ship but is excluded")
	assert.Equal(t, []string{"missile"}, *enemyHits)
	assert.Equal(t, []string{"enemy"}, *missileHits)
}

func TestSplatModelCollisionNotifiesModelOnly(t *testing.T) {
	s, _ := newTestScene(t)
	m, err := s.AddModel(context.Background(), "ship.obj", "ship")
	require.NoError(t, err)
	enemy := addSplat(t, s, "enemy", CategoryEnemy, -0.05, -0.05)
	missile := addSplat(t, s, "missile", CategoryMissile, -0.05, -0.05)
	// Keep the two splats apart from each other for this test.
	missile.SetSize(0.01, 0.01)
	missile.SetPosition(-0.02, 0.9, 0)

	enemyHits, missileHits, modelHits := hits(enemy), hits(missile), hits(m)
	s.DetectCollisions()

	assert.Equal(t, []string{"enemy"}, *modelHits)
	assert.Empty(t, *enemyHits)
	assert.Empty(t, *missileHits)

	// Moving the missile onto the ship still does not notify the model.
	missile.SetPosition(-0.02, -0.02, 0)
	*modelHits = nil
	enemy.SetPosition(0.8, 0.8, 0)
	s.DetectCollisions()
	assert.Empty(t, *modelHits)
}

func TestCollisionSkipsRetiredEntities(t *testing.T) {
	s, _ := newTestScene(t)
	a := addSplat(t, s, "a", CategoryMissile, 0, 0)
	b := addSplat(t, s, "b", CategoryEnemy, 0.05, 0.05)
	c := addSplat(t, s, "c", CategoryEnemy, 0.1, 0.1)

	a.OnCollide(func(other Entity) { s.RetireSplat(other.ID()) })
	bHits, cHits := hits(b), hits(c)

	s.DetectCollisions()

	assert.Equal(t, []string{"a"}, *bHits, "b is notified once, then gone for b-c")
	assert.Equal(t, []string{"a"}, *cHits)
	assert.True(t, b.Released())
	assert.True(t, c.Released())
	assert.Len(t, s.Splats(), 1)
}

func TestCollisionEdgeContact(t *testing.T) {
	s, _ := newTestScene(t)
	a := addSplat(t, s, "a", CategoryEnemy, 0, 0)
	b := addSplat(t, s, "b", CategoryEnemy, DefaultSplatSize, 0)

	aHits := hits(a)
	hits(b)
	s.DetectCollisions()
	assert.Empty(t, *aHits, "a's right edge touching b's left edge does not count")

	b.SetPosition(-DefaultSplatSize, 0, 0)
	s.DetectCollisions()
	assert.Equal(t, []string{"b"}, *aHits, "b's right edge touching a's left edge counts")
}
