// Package gate implements the master key gate that guards every user administration route.
//
// The gate moves linearly through locked, verified and active. Its state lives in the caller's
// session, so each operator session passes the gate on its own.
package gate

import (
	"crypto/subtle"
	"time"

	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/errs"
)

const (
	keyMasterAuthOK = "master_auth_ok"
	keyShowForm     = "show_form"

	defaultConfirmWindow = 2 * time.Minute
)

// SessionStore is the subset of a request session the gate needs. hertz-contrib/sessions.Session satisfies it.
type SessionStore interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Save() error
}

type Gate struct {
	masterKey     string
	confirmWindow time.Duration
	now           func() time.Time
}

func New(masterKey string, confirmWindow time.Duration) (*Gate, errs.Error) {
	if masterKey == "" {
		return nil, errs.GateNotConfigured
	}
	if confirmWindow <= 0 {
		confirmWindow = defaultConfirmWindow
	}
	return &Gate{
		masterKey:     masterKey,
		confirmWindow: confirmWindow,
		now:           time.Now,
	}, nil
}

func NewDefault() (*Gate, errs.Error) {
	conf := config.GetGateConf()
	return New(conf.MasterKey, time.Duration(conf.DeleteConfirmSeconds)*time.Second)
}

func (g *Gate) State(sess SessionStore) domain.GateState {
	if ok, _ := sess.Get(keyMasterAuthOK).(bool); !ok {
		return domain.GateLocked
	}
	if show, _ := sess.Get(keyShowForm).(bool); !show {
		return domain.GateVerified
	}
	return domain.GateActive
}

// Verify checks the presented key while locked. Retries are unlimited; a gate that is already
// open is left untouched.
func (g *Gate) Verify(sess SessionStore, input string) (domain.GateState, errs.Error) {
	if state := g.State(sess); state != domain.GateLocked {
		return state, nil
	}

	if subtle.ConstantTimeCompare([]byte(input), []byte(g.masterKey)) != 1 {
		return domain.GateLocked, errs.MasterKeyIncorrect
	}

	sess.Set(keyMasterAuthOK, true)
	if err := sess.Save(); err != nil {
		return domain.GateLocked, errs.ServerError.SetErr(err)
	}
	return domain.GateVerified, nil
}

// Enter confirms a verified session and opens the admin form.
func (g *Gate) Enter(sess SessionStore) (domain.GateState, errs.Error) {
	switch g.State(sess) {
	case domain.GateLocked:
		return domain.GateLocked, errs.GateLocked
	case domain.GateActive:
		return domain.GateActive, nil
	}

	sess.Set(keyShowForm, true)
	if err := sess.Save(); err != nil {
		return domain.GateVerified, errs.ServerError.SetErr(err)
	}
	return domain.GateActive, nil
}

func (g *Gate) IsActive(sess SessionStore) bool {
	return g.State(sess) == domain.GateActive
}

// RowConfirm binds the armed-delete flags of one session.
func (g *Gate) RowConfirm(sess SessionStore) *RowConfirm {
	return &RowConfirm{
		sess:   sess,
		window: g.confirmWindow,
		now:    g.now,
	}
}
