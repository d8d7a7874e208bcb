package gate

import (
	"errors"
	"testing"
	"time"

	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/errs"

	"github.com/stretchr/testify/assert"
)

type memSession struct {
	values  map[interface{}]interface{}
	saveErr error
	saves   int
}

func newMemSession() *memSession {
	return &memSession{values: map[interface{}]interface{}{}}
}

func (s *memSession) Get(key interface{}) interface{}      { return s.values[key] }
func (s *memSession) Set(key interface{}, val interface{}) { s.values[key] = val }
func (s *memSession) Delete(key interface{})               { delete(s.values, key) }
func (s *memSession) Save() error {
	s.saves++
	return s.saveErr
}

func TestNew(t *testing.T) {
	g, bizErr := New("", time.Minute)
	assert.Nil(t, g)
	assert.True(t, errs.ErrorEqual(errs.GateNotConfigured, bizErr))

	g, bizErr = New("k", 0)
	assert.Nil(t, bizErr)
	assert.Equal(t, defaultConfirmWindow, g.confirmWindow)
}

func TestGate_Flow(t *testing.T) {
	g, _ := New("master-key", time.Minute)
	sess := newMemSession()

	assert.Equal(t, domain.GateLocked, g.State(sess))

	t.Run("enter while locked", func(t *testing.T) {
		state, bizErr := g.Enter(sess)
		assert.Equal(t, domain.GateLocked, state)
		assert.True(t, errs.ErrorEqual(errs.GateLocked, bizErr))
	})

	t.Run("wrong key keeps locked and allows retries", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			state, bizErr := g.Verify(sess, "guess")
			assert.Equal(t, domain.GateLocked, state)
			assert.True(t, errs.ErrorEqual(errs.MasterKeyIncorrect, bizErr))
		}
		assert.False(t, g.IsActive(sess))
	})

	t.Run("key is compared exactly", func(t *testing.T) {
		state, _ := g.Verify(sess, "master-key ")
		assert.Equal(t, domain.GateLocked, state)
		state, _ = g.Verify(sess, "MASTER-KEY")
		assert.Equal(t, domain.GateLocked, state)
	})

	t.Run("correct key verifies", func(t *testing.T) {
		state, bizErr := g.Verify(sess, "master-key")
		assert.Nil(t, bizErr)
		assert.Equal(t, domain.GateVerified, state)
		assert.Equal(t, domain.GateVerified, g.State(sess))
	})

	t.Run("verify again is a no-op", func(t *testing.T) {
		state, bizErr := g.Verify(sess, "wrong")
		assert.Nil(t, bizErr)
		assert.Equal(t, domain.GateVerified, state)
	})

	t.Run("enter activates", func(t *testing.T) {
		state, bizErr := g.Enter(sess)
		assert.Nil(t, bizErr)
		assert.Equal(t, domain.GateActive, state)
		assert.True(t, g.IsActive(sess))

		state, bizErr = g.Enter(sess)
		assert.Nil(t, bizErr)
		assert.Equal(t, domain.GateActive, state)
	})
}

func TestGate_ActiveNeedsVerifiedKey(t *testing.T) {
	g, _ := New("master-key", time.Minute)
	sess := newMemSession()
	sess.Set(keyShowForm, true)

	assert.Equal(t, domain.GateLocked, g.State(sess))
	assert.False(t, g.IsActive(sess))
}

func TestGate_SaveError(t *testing.T) {
	g, _ := New("master-key", time.Minute)
	sess := newMemSession()
	sess.saveErr = errors.New("redis down")

	state, bizErr := g.Verify(sess, "master-key")
	assert.Equal(t, domain.GateLocked, state)
	assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
}

func TestRowConfirm(t *testing.T) {
	g, _ := New("master-key", time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	sess := newMemSession()
	rc := g.RowConfirm(sess)

	assert.False(t, rc.Armed("alice"))
	assert.NoError(t, rc.Arm("alice"))
	assert.True(t, rc.Armed("alice"))
	assert.False(t, rc.Armed("bob"))

	now = now.Add(2 * time.Minute)
	assert.False(t, rc.Armed("alice"), "armed flag expires")

	assert.NoError(t, rc.Arm("alice"))
	assert.NoError(t, rc.Disarm("alice"))
	assert.False(t, rc.Armed("alice"))
}
